// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes mounts the users & roles page, user modals and /roles.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeUsers)
	r.Post("/", h.Crud.HandleCreate)
	r.Get("/new", h.Crud.ServeNew)
	r.Get("/roles/new", h.ServeAddRole)
	r.Post("/roles", h.HandleAddRole)
	r.Get("/{id}", h.Crud.ServeView)
	r.Get("/{id}/edit", h.Crud.ServeEdit)
	r.Post("/{id}/edit", h.Crud.HandleEdit)
	r.Get("/{id}/delete", h.Crud.ServeDelete)
	r.Post("/{id}/delete", h.Crud.HandleDelete)

	return r
}
