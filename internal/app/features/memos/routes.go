// internal/app/features/memos/routes.go
package memos

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCompose)
	r.Get("/new", h.ServeCompose)
	r.Get("/{id}", h.ServeMemo)
	r.Post("/{id}/send", h.HandleSend)
	r.Get("/{id}/edit", h.Crud.ServeEdit)
	r.Post("/{id}/edit", h.Crud.HandleEdit)
	r.Get("/{id}/delete", h.Crud.ServeDelete)
	r.Post("/{id}/delete", h.Crud.HandleDelete)

	return r
}
