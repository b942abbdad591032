package ui

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/sidebar", h.HandleSidebar)
	return r
}
