// internal/app/features/memos/handler.go
package memos

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/authz"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/htmlsanitize"
	"github.com/ohenegyan12/church-management/internal/app/system/inputval"
	"github.com/ohenegyan12/church-management/internal/app/system/limits"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const listTarget = "memo-list"

// Handler serves the memo list, compose and reading views. Edit and
// delete go through Crud.
type Handler struct {
	Set  *collections.Set
	Crud *crud.Handler[models.Memo]

	ErrLog *uierrors.ErrorLogger
	Flash  *flash.Flasher
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Set:    set,
		Crud:   crud.NewHandler(Resource(set, logger), errLog, flasher, logger),
		ErrLog: errLog,
		Flash:  flasher,
		Log:    logger,
	}
}

type memoRow struct {
	ID       int64
	Subject  string
	From     string
	To       string
	Date     string
	Priority string
	Status   string
	Read     int
	Draft    bool
}

type listData struct {
	viewdata.BaseVM
	Q         string
	Status    string
	Stats     []crud.Stat
	Rows      []memoRow
	ReturnURL string
}

// ServeList renders memos newest first. ?status=sent|draft filters and ?q=
// searches subject, sender and recipients.
//
// Route: GET /administration/memos
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.Set.Memos.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list memos failed", err, "Unable to load memos.", "/dashboard")
		return
	}

	data := listData{
		BaseVM:    viewdata.NewBaseVM(r, "Memos", "/dashboard"),
		Q:         query.Search(r, "q"),
		Status:    query.Get(r, "status"),
		ReturnURL: httpnav.CurrentPath(r),
	}
	data.Subtitle = "Internal circulars to staff, clergy and societies"

	var sent, drafts, high int
	for _, m := range all {
		switch m.Status {
		case models.StatusSent:
			sent++
		case models.StatusDraft:
			drafts++
		}
		if m.Priority == "high" {
			high++
		}
	}
	data.Stats = []crud.Stat{
		{Label: "Total Memos", Value: shared.Count(len(all))},
		{Label: "Sent", Value: shared.Count(sent), Tone: "ok"},
		{Label: "Drafts", Value: shared.Count(drafts)},
		{Label: "High Priority", Value: shared.Count(high), Tone: "danger"},
	}

	slices.SortStableFunc(all, func(a, b models.Memo) int { return b.Date.Compare(a.Date) })
	fq := text.Fold(data.Q)
	for _, m := range all {
		if data.Status != "" && m.Status != data.Status {
			continue
		}
		if fq != "" && !strings.Contains(text.Fold(m.Subject+" "+m.From+" "+m.To), fq) {
			continue
		}
		data.Rows = append(data.Rows, memoRow{
			ID:       m.ID,
			Subject:  m.Subject,
			From:     m.From,
			To:       m.To,
			Date:     shared.Date(m.Date),
			Priority: m.Priority,
			Status:   m.Status,
			Read:     m.Read,
			Draft:    m.Status == models.StatusDraft,
		})
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == listTarget {
		templates.RenderSnippet(w, "memo_rows", data)
		return
	}
	templates.Render(w, r, "memos_list", data)
}

type composeInput struct {
	Subject  string `validate:"required,max=200" label:"Subject"`
	To       string `validate:"required" label:"Recipients"`
	Priority string `validate:"required,oneof=low medium high" label:"Priority"`
	Body     string `validate:"required,max=20000" label:"Content"`
}

type composeData struct {
	formutil.Base
	composeInput
	Recipients []string
	Priorities []string
}

// ServeCompose renders the compose modal.
//
// Route: GET /administration/memos/new
func (h *Handler) ServeCompose(w http.ResponseWriter, r *http.Request) {
	h.renderCompose(w, r, composeInput{Priority: "medium"}, "")
}

// HandleCompose saves the memo as a draft, or sends it when the Send button
// was used (action=send).
//
// Route: POST /administration/memos
func (h *Handler) HandleCompose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", Base)
		return
	}

	in := composeInput{
		Subject:  strings.TrimSpace(r.FormValue("subject")),
		To:       strings.TrimSpace(r.FormValue("to")),
		Priority: strings.TrimSpace(r.FormValue("priority")),
		Body:     strings.TrimSpace(r.FormValue("body")),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.renderCompose(w, r, in, res.First())
		return
	}
	if !slices.Contains(Recipients, in.To) {
		h.renderCompose(w, r, in, "Recipients must be one of the listed options.")
		return
	}

	send := r.FormValue("action") == "send"
	status := models.StatusDraft
	if send {
		status = models.StatusSent
	}
	from := "Head Office"
	if _, name, ok := authz.UserCtx(r); ok && name != "" {
		from = name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Set.Memos.Insert(ctx, models.Memo{
		Subject:  in.Subject,
		From:     from,
		To:       in.To,
		Date:     h.Set.Memos.Now(),
		Priority: in.Priority,
		Status:   status,
		Body:     htmlsanitize.Sanitize(in.Body),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "insert memo failed", err, "Unable to save the memo.", Base)
		return
	}

	action := "drafted"
	msg := "Memo saved as draft"
	if send {
		action = "sent"
		msg = "Memo sent to " + m.To
	}
	h.record(ctx, w, r, action, m, msg)
	formutil.Redirect(w, r, Base)
}

func (h *Handler) renderCompose(w http.ResponseWriter, r *http.Request, in composeInput, errMsg string) {
	data := composeData{composeInput: in, Recipients: Recipients, Priorities: priorities}
	formutil.SetBase(&data.Base, r, "Compose Memo", Base)
	if errMsg != "" {
		data.SetError(errMsg)
	}
	formutil.Render(w, r, "memo_compose", data)
}

type memoData struct {
	formutil.Base
	Memo memoRow
	Body template.HTML
}

// ServeMemo shows a memo with its sanitized body.
//
// Route: GET /administration/memos/{id}
func (h *Handler) ServeMemo(w http.ResponseWriter, r *http.Request) {
	m, ok := h.load(w, r)
	if !ok {
		return
	}
	data := memoData{
		Memo: memoRow{
			ID: m.ID, Subject: m.Subject, From: m.From, To: m.To,
			Date: shared.Date(m.Date), Priority: m.Priority, Status: m.Status,
			Read: m.Read, Draft: m.Status == models.StatusDraft,
		},
		Body: htmlsanitize.PrepareForDisplay(m.Body),
	}
	formutil.SetBase(&data.Base, r, m.Subject, Base)
	formutil.Render(w, r, "memo_view", data)
}

// HandleSend sends a draft.
//
// Route: POST /administration/memos/{id}/send
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid memo link.", Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Set.Memos.Update(ctx, id, func(m *models.Memo) error {
		if m.Status != models.StatusDraft {
			return errAlreadySent
		}
		m.Status = models.StatusSent
		m.Date = h.Set.Memos.Now()
		return nil
	})
	switch {
	case errors.Is(err, memstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "memo not found", err, "That memo no longer exists.", Base)
		return
	case errors.Is(err, errAlreadySent):
		h.Flash.Error(w, r, "That memo has already been sent.")
		formutil.Redirect(w, r, Base)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "send memo failed", err, "Unable to send the memo.", Base)
		return
	}

	h.record(ctx, w, r, "sent", m, "Memo sent to "+m.To)
	formutil.Redirect(w, r, Base)
}

var errAlreadySent = errors.New("memo already sent")

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Memo, bool) {
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid memo link.", Base)
		return models.Memo{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Set.Memos.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "memo not found", err, "That memo no longer exists.", Base)
		return m, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load memo failed", err, "Unable to load the memo.", Base)
		return m, false
	}
	return m, true
}

func (h *Handler) record(ctx context.Context, w http.ResponseWriter, r *http.Request, action string, m models.Memo, msg string) {
	metrics.Mutation(h.Set.Memos.Name(), action)
	h.Log.Info("memo "+action, zap.Int64("id", m.ID), zap.String("to", m.To))
	if h.Crud.Res.OnChange != nil {
		h.Crud.Res.OnChange(ctx, action, m)
	}
	h.Flash.Success(w, r, msg)
}
