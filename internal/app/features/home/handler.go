package home

import (
	"net/http"

	"github.com/ohenegyan12/church-management/internal/app/system/auth"
)

// Handler serves the site root.
type Handler struct{}

// NewHandler constructs a home Handler.
func NewHandler() *Handler { return &Handler{} }

// ServeIndex handles GET /: signed-in visitors go to the dashboard,
// everyone else to the login page.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
