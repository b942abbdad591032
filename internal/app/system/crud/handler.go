package crud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/inputval"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"github.com/ohenegyan12/church-management/internal/app/system/navigation"
	"go.uber.org/zap"
)

// Handler serves the generic pages for one Resource.
type Handler[T any] struct {
	Res    *Resource[T]
	ErrLog *uierrors.ErrorLogger
	Flash  *flash.Flasher
	Log    *zap.Logger
}

// NewHandler constructs a Handler for res.
func NewHandler[T any](res *Resource[T], errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler[T] {
	return &Handler[T]{
		Res:    res,
		ErrLog: errLog,
		Flash:  flasher,
		Log:    logger,
	}
}

// ParseID reads the {id} URL parameter. IDs are positive integers.
func ParseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler[T]) res() resVM {
	return resVM{
		Base:     h.Res.Base,
		Singular: h.Res.Singular,
		Plural:   h.Res.Plural,
		Subtitle: h.Res.Subtitle,
		ReadOnly: h.Res.ReadOnly,
		Actions:  h.Res.Actions,
	}
}

func (h *Handler[T]) title(rec *T) string {
	if h.Res.Title != nil {
		if t := h.Res.Title(rec); t != "" {
			return t
		}
	}
	return h.Res.Singular
}

func (h *Handler[T]) backURL(r *http.Request) string {
	opts := navigation.ResourceBackURL(h.Res.Base)
	if h.Res.Home != "" {
		opts.AllowedPrefix = h.Res.Home
	}
	return navigation.SafeBackURL(r, opts)
}

// load fetches the record named by the URL and renders the error page when
// it cannot. ok is false when a response has already been written.
func (h *Handler[T]) load(ctx context.Context, w http.ResponseWriter, r *http.Request) (rec T, id int64, ok bool) {
	id, ok = ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, fmt.Sprintf("That is not a valid %s link.", strings.ToLower(h.Res.Singular)), h.Res.Base)
		return rec, 0, false
	}
	rec, err := h.Res.Store.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, h.Res.Collection()+" record not found", err,
			fmt.Sprintf("That %s no longer exists.", strings.ToLower(h.Res.Singular)), h.Res.Base)
		return rec, id, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load "+h.Res.Collection()+" record failed", err,
			fmt.Sprintf("Unable to load the %s.", strings.ToLower(h.Res.Singular)), h.Res.Base)
		return rec, id, false
	}
	return rec, id, true
}

func (h *Handler[T]) options(ctx context.Context, f Field[T]) []string {
	if f.OptionsFrom == nil {
		return f.Options
	}
	opts, err := f.OptionsFrom(ctx)
	if err != nil {
		h.Log.Warn("load field options failed", zap.String("field", f.Name), zap.Error(err))
		return f.Options
	}
	return opts
}

// fields builds the form inputs. values holds re-posted input after a
// failed submit; otherwise rec (or the field defaults when isNew) supplies
// them.
func (h *Handler[T]) fields(ctx context.Context, rec *T, isNew bool, values map[string]string) []fieldVM {
	out := make([]fieldVM, 0, len(h.Res.Fields))
	for _, f := range h.Res.Fields {
		var v string
		switch {
		case values != nil:
			v = values[f.Name]
		case isNew:
			v = f.Default
		default:
			v = f.Get(rec)
		}
		opts := h.options(ctx, f)
		if f.Kind == Select && v != "" && !slices.Contains(opts, v) {
			// Keep a stale value selectable so an edit does not silently change it.
			opts = append(slices.Clone(opts), v)
		}
		out = append(out, fieldVM{
			Name:        f.Name,
			Label:       f.Label,
			Kind:        string(f.Kind),
			Placeholder: f.Placeholder,
			Value:       v,
			Required:    f.Required(),
			Options:     opts,
		})
	}
	return out
}

// bind validates the posted form and copies it onto rec. It returns the
// trimmed posted values (for re-rendering) and the first user-facing error.
func (h *Handler[T]) bind(ctx context.Context, r *http.Request, rec *T) (map[string]string, string) {
	values := make(map[string]string, len(h.Res.Fields))
	for _, f := range h.Res.Fields {
		values[f.Name] = strings.TrimSpace(r.PostFormValue(f.Name))
	}
	for _, f := range h.Res.Fields {
		v := values[f.Name]
		if msg := inputval.ValidateValue(f.Label, v, f.Rules); msg != "" {
			return values, msg
		}
		if v != "" && (f.Options != nil || f.OptionsFrom != nil) {
			if !slices.Contains(h.options(ctx, f), v) && v != f.Get(rec) {
				return values, f.Label + " must be one of the listed options."
			}
		}
		if err := f.Set(rec, v); err != nil {
			return values, userMessage(err)
		}
	}
	return values, ""
}

// changed records a successful mutation in metrics, logs and the resource
// hook, then queues the toast.
func (h *Handler[T]) changed(ctx context.Context, w http.ResponseWriter, r *http.Request, action string, rec T, id int64) {
	metrics.Mutation(h.Res.Collection(), action)
	h.Log.Info("record "+action,
		zap.String("collection", h.Res.Collection()),
		zap.Int64("id", id))
	if h.Res.OnChange != nil {
		h.Res.OnChange(ctx, action, rec)
	}
	var msg string
	switch action {
	case "created":
		msg = h.Res.Singular + " added successfully!"
	case "updated":
		msg = h.Res.Singular + " updated successfully!"
	case "deleted":
		msg = h.Res.Singular + " deleted successfully!"
	}
	h.Flash.Success(w, r, msg)
}
