// internal/app/features/districts/routes.go
package districts

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Crud.ServeList)
	r.Post("/", h.Crud.HandleCreate)
	r.Get("/new", h.Crud.ServeNew)
	r.Get("/{id}", h.ServeDetail)
	r.Get("/{id}/edit", h.Crud.ServeEdit)
	r.Post("/{id}/edit", h.Crud.HandleEdit)
	r.Get("/{id}/delete", h.Crud.ServeDelete)
	r.Post("/{id}/delete", h.Crud.HandleDelete)
	return r
}
