// Package ui serves small endpoints that only change presentation state.
package ui

import (
	"context"
	"errors"
	"net/http"

	prefsstore "github.com/ohenegyan12/church-management/internal/app/store/prefs"
	"github.com/ohenegyan12/church-management/internal/app/system/auth"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/navigation"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Prefs *prefsstore.Store
	Log   *zap.Logger
}

func NewHandler(prefs *prefsstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Prefs: prefs, Log: logger}
}

// HandleSidebar flips the desktop sidebar collapse for this browser.
// htmx callers already toggled the class client-side and get 204; a plain
// form post is sent back where it came from.
//
// Route: POST /ui/sidebar
func (h *Handler) HandleSidebar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	collapsed, err := h.Prefs.ToggleSidebar(ctx, auth.BrowserID(r))
	if errors.Is(err, prefsstore.ErrNoBrowser) {
		h.Log.Warn("sidebar toggle without browser id")
		http.Error(w, "no browser session", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Log.Error("sidebar toggle failed", zap.Error(err))
		http.Error(w, "could not save preference", http.StatusInternalServerError)
		return
	}
	h.Log.Debug("sidebar toggled", zap.Bool("collapsed", collapsed))

	if formutil.IsHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.BackURLOptions{Fallback: "/dashboard"}), http.StatusSeeOther)
}
