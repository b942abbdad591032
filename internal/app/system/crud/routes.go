package crud

import "github.com/go-chi/chi/v5"

// Routes mounts the generic pages for h under its resource base.
func Routes[T any](h *Handler[T]) chi.Router {
	r := chi.NewRouter()
	Mount(r, h)
	return r
}

// Mount adds the list and modal routes to an existing router, for features
// that serve extra pages beside them.
func Mount[T any](r chi.Router, h *Handler[T]) {
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/new", h.ServeNew)
	r.Get("/{id}", h.ServeView)
	r.Get("/{id}/edit", h.ServeEdit)
	r.Post("/{id}/edit", h.HandleEdit)
	r.Get("/{id}/delete", h.ServeDelete)
	r.Post("/{id}/delete", h.HandleDelete)
}
