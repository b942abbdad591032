// internal/app/features/finance/routes.go
package finance

import (
	"github.com/go-chi/chi/v5"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
)

// Routes mounts /finance/collections, /finance/payments and /finance/reports.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Mount("/collections", crud.Routes(h.CollectionsCrud))

	r.Route("/payments", func(pr chi.Router) {
		crud.Mount(pr, h.PaymentsCrud)
		pr.Get("/{id}/receipt", h.ServeReceipt)
	})

	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/", h.ServeReports)
		rr.Post("/", h.ReportsCrud.HandleCreate)
		rr.Get("/new", h.ReportsCrud.ServeNew)
		rr.Get("/chart", h.ServeChart)
		rr.Get("/{id}", h.ReportsCrud.ServeView)
		rr.Get("/{id}/delete", h.ReportsCrud.ServeDelete)
		rr.Post("/{id}/delete", h.ReportsCrud.HandleDelete)
		rr.Post("/{id}/download", h.Downloads.HandleDownload)
	})

	return r
}
