package logout

import (
	"net/http"

	"github.com/ohenegyan12/church-management/internal/app/system/auth"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

type confirmData struct {
	formutil.Base
}

// ServeConfirm handles GET /logout: the "are you sure" modal.
func (h *Handler) ServeConfirm(w http.ResponseWriter, r *http.Request) {
	var data confirmData
	formutil.SetBase(&data.Base, r, "Log out", "/dashboard")
	formutil.Render(w, r, "logout_confirm", data)
}

// HandleLogout handles POST /logout. The display identity is dropped; the
// browser ID (and with it the sidebar preference) survives.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("signed out", zap.String("login_id", u.LoginID))
	}
	formutil.Redirect(w, r, "/login")
}
