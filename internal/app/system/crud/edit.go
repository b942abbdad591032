package crud

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
)

func editURL(base string, id int64) string   { return fmt.Sprintf("%s/%d/edit", base, id) }
func deleteURL(base string, id int64) string { return fmt.Sprintf("%s/%d/delete", base, id) }

// ServeEdit renders the edit modal pre-filled from the stored record.
//
// Route: GET {base}/{id}/edit
func (h *Handler[T]) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, id, ok := h.load(ctx, w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, h.fields(ctx, &rec, false, nil), id, "")
}

// HandleEdit validates the edit form and replaces the record.
//
// Route: POST {base}/{id}/edit
func (h *Handler[T]) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", h.Res.Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, id, ok := h.load(ctx, w, r)
	if !ok {
		return
	}

	values, msg := h.bind(ctx, r, &rec)
	if msg == "" && h.Res.Prepare != nil {
		if err := h.Res.Prepare(ctx, &rec, false); err != nil {
			msg = err.Error()
		}
	}
	if msg != "" {
		h.renderForm(w, r, h.fields(ctx, &rec, false, values), id, msg)
		return
	}

	saved, err := h.Res.Store.Replace(ctx, rec)
	if errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, h.Res.Collection()+" record vanished during edit", err,
			"That record was removed while you were editing it.", h.Res.Base)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "replace "+h.Res.Collection()+" failed", err,
			"Unable to save the record.", h.Res.Base)
		return
	}

	h.changed(ctx, w, r, "updated", saved, id)
	formutil.Redirect(w, r, h.backURL(r))
}
