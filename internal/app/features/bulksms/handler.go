// internal/app/features/bulksms/handler.go
package bulksms

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/queries/dashboardstats"
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

// Handler serves the compose, templates and history tabs. Template forms
// come from the generic Crud handler.
type Handler struct {
	Set       *collections.Set
	Templates *crud.Handler[models.SMSTemplate]

	ErrLog *uierrors.ErrorLogger
	Flash  *flash.Flasher
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Set:       set,
		Templates: crud.NewHandler(TemplateResource(set, logger), errLog, flasher, logger),
		ErrLog:    errLog,
		Flash:     flasher,
		Log:       logger,
	}
}

type composeInput struct {
	Recipients string `validate:"required" label:"Recipients"`
	Message    string `validate:"required,max=918" label:"Message"`
}

type historyRow struct {
	BatchID    string
	Recipients string
	Message    string
	Segments   int
	SentAt     string
	Status     string
}

type pageData struct {
	viewdata.BaseVM
	Tab string
	composeInput
	Error     string
	Loaded    string
	Groups    []string
	Length    int
	Templates []models.SMSTemplate
	Quick     []models.SMSTemplate
	History   []historyRow
	Stats     []crud.Stat
	ReturnURL string
}

// ServeSMS renders the page. ?tab= picks compose (default), templates or
// history; ?template=<slug> loads that template into the compose form.
//
// Route: GET /administration/bulk-sms
func (h *Handler) ServeSMS(w http.ResponseWriter, r *http.Request) {
	in := composeInput{Recipients: query.Get(r, "to")}
	h.render(w, r, in, "")
}

// HandleSend validates the compose form and records the message in the
// outbox history. Nothing leaves the server.
//
// Route: POST /administration/bulk-sms/send
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxFormSize)
	if err := r.ParseForm(); err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid form data.", Base)
		return
	}
	in := composeInput{
		Recipients: strings.TrimSpace(r.FormValue("recipients")),
		Message:    htmlsanitize.StripTags(r.FormValue("message")),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.render(w, r, in, "Please fill in all fields. "+res.First())
		return
	}
	if !slices.Contains(Groups, in.Recipients) {
		h.render(w, r, in, "Recipients must be one of the listed groups.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msg, err := h.Set.SMSMessages.Insert(ctx, models.SMSMessage{
		BatchID:    uuid.NewString(),
		Recipients: in.Recipients,
		Message:    in.Message,
		SentAt:     h.Set.SMSMessages.Now(),
		Status:     models.StatusSent,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "insert sms failed", err, "Unable to send the message.", Base)
		return
	}

	metrics.Mutation(h.Set.SMSMessages.Name(), "sent")
	h.Log.Info("sms queued",
		zap.String("batch", msg.BatchID),
		zap.String("recipients", msg.Recipients),
		zap.Int("segments", Segments(msg.Message)))
	if err := dashboardstats.LogActivity(ctx, h.Set, "sms", "SMS sent to "+msg.Recipients); err != nil {
		h.Log.Warn("activity feed write failed", zap.Error(err))
	}
	h.Flash.Success(w, r, "SMS sent successfully")
	formutil.Redirect(w, r, Base)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, in composeInput, errMsg string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tpls, err := h.Set.SMSTemplates.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list sms templates failed", err, "Unable to load SMS templates.", "/dashboard")
		return
	}
	sent, err := h.Set.SMSMessages.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list sms history failed", err, "Unable to load SMS history.", "/dashboard")
		return
	}

	data := pageData{
		BaseVM:       viewdata.NewBaseVM(r, "Bulk SMS", "/dashboard"),
		Tab:          "compose",
		composeInput: in,
		Error:        errMsg,
		Groups:       Groups,
		Templates:    tpls,
		Quick:        tpls[:min(3, len(tpls))],
		ReturnURL:    httpnav.CurrentPath(r),
	}
	data.Subtitle = "Send messages to members and groups"
	switch tab := query.Get(r, "tab"); tab {
	case "templates", "history":
		data.Tab = tab
	}

	if slug := query.Get(r, "template"); slug != "" && r.Method == http.MethodGet {
		i := slices.IndexFunc(tpls, func(t models.SMSTemplate) bool { return t.Slug == slug })
		if i < 0 {
			h.ErrLog.LogNotFound(w, r, "sms template not found", nil, "That template no longer exists.", Base)
			return
		}
		data.Tab = "compose"
		data.Message = tpls[i].Content
		data.Loaded = tpls[i].Name
	}
	data.Length = len([]rune(data.Message))

	segments := 0
	for i := len(sent) - 1; i >= 0; i-- {
		m := sent[i]
		segments += Segments(m.Message)
		data.History = append(data.History, historyRow{
			BatchID:    m.BatchID,
			Recipients: m.Recipients,
			Message:    m.Message,
			Segments:   Segments(m.Message),
			SentAt:     shared.Date(m.SentAt),
			Status:     m.Status,
		})
	}
	data.Stats = []crud.Stat{
		{Label: "Messages Sent", Value: shared.Count(len(sent))},
		{Label: "SMS Segments", Value: shared.Count(segments)},
		{Label: "Templates", Value: shared.Count(len(tpls))},
	}

	if errMsg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "sms_page", data)
}
