// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.Post("/", h.HandleLoginPost)
	return r
}

// ForgotRoutes mounts the forgot-password page.
func ForgotRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeForgot)
	r.Post("/", h.HandleForgotPost)
	return r
}
