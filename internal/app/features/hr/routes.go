// internal/app/features/hr/routes.go
package hr

import (
	"github.com/go-chi/chi/v5"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
)

// Routes mounts the HR page, /employees and /leave.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeHR)
	r.Mount("/employees", crud.Routes(h.Employees))
	r.Route("/leave", func(lr chi.Router) {
		crud.Mount(lr, h.Leave)
		lr.Post("/{id}/approve", h.HandleApprove)
		lr.Post("/{id}/reject", h.HandleReject)
	})

	return r
}
