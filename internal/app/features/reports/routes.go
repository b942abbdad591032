// internal/app/features/reports/routes.go
package reports

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeReports)
	r.Post("/", h.Crud.HandleCreate)
	r.Get("/new", h.Crud.ServeNew)
	r.Get("/membership.csv", h.ServeMembershipCSV)
	r.Get("/charts/collections", h.ServeCollectionsChart)
	r.Get("/charts/membership", h.ServeMembershipChart)
	r.Get("/{id}", h.Crud.ServeView)
	r.Get("/{id}/delete", h.Crud.ServeDelete)
	r.Post("/{id}/delete", h.Crud.HandleDelete)
	r.Post("/{id}/download", h.Downloads.HandleDownload)

	return r
}
