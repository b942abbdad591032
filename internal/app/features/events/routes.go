// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

// Routes mounts the calendar at / and the event modals beside it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeCalendar)
	r.Post("/", h.Crud.HandleCreate)
	r.Get("/new", h.Crud.ServeNew)
	r.Get("/{id}", h.Crud.ServeView)
	r.Get("/{id}/edit", h.Crud.ServeEdit)
	r.Post("/{id}/edit", h.Crud.HandleEdit)
	r.Get("/{id}/delete", h.Crud.ServeDelete)
	r.Post("/{id}/delete", h.Crud.HandleDelete)

	return r
}
