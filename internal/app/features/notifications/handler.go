package notifications

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	notificationstore "github.com/ohenegyan12/church-management/internal/app/store/notifications"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Store  *notificationstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *notificationstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, Log: logger}
}

type listData struct {
	formutil.Base
	Items  []models.Notification
	Unread int
}

// ServeList handles GET /notifications, the bell modal.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	h.render(ctx, w, r)
}

// HandleMarkRead handles POST /notifications/{id}/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid notification.", "/notifications")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Store.MarkRead(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "notification not found", err, "That notification no longer exists.", "/notifications")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "mark notification read failed", err, "Unable to update the notification.", "/notifications")
		return
	}
	metrics.Mutation("notifications", "updated")
	h.done(ctx, w, r)
}

// HandleMarkAllRead handles POST /notifications/read-all.
func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Store.MarkAllRead(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "mark all notifications read failed", err, "Unable to update notifications.", "/notifications")
		return
	}
	h.Log.Info("notifications marked read", zap.Int("count", n))
	metrics.Mutation("notifications", "updated")
	h.done(ctx, w, r)
}

// done re-renders the modal for htmx so it stays open with fresh state.
func (h *Handler) done(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if formutil.IsHTMX(r) {
		h.render(ctx, w, r)
		return
	}
	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list notifications failed", err, "Unable to load notifications.", "/dashboard")
		return
	}
	data := listData{Items: items}
	for _, n := range items {
		if !n.Read {
			data.Unread++
		}
	}
	formutil.SetBase(&data.Base, r, "Notifications", "/dashboard")
	// The header badge is computed before the mark; keep it in step.
	data.UnreadCount = data.Unread
	formutil.Render(w, r, "notifications_modal", data)
}
