// internal/app/features/documents/routes.go
package documents

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleUpload)
	r.Get("/new", h.ServeUpload)
	r.Get("/{id}", h.ServeDocument)
	r.Post("/{id}/download", h.HandleDownload)
	r.Get("/{id}/edit", h.Crud.ServeEdit)
	r.Post("/{id}/edit", h.Crud.HandleEdit)
	r.Get("/{id}/delete", h.Crud.ServeDelete)
	r.Post("/{id}/delete", h.Crud.HandleDelete)

	return r
}
