// internal/app/features/settings/routes.go
package settings

import "github.com/go-chi/chi/v5"

// Routes mounts the settings page and one POST per form.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeSettings)
	r.Post("/organization", h.HandleOrganization)
	r.Post("/password", h.HandlePassword)
	r.Post("/mobile-money", h.HandleMobileMoney)
	r.Post("/bank", h.HandleBank)

	return r
}
