// internal/app/features/bulksms/routes.go
package bulksms

import (
	"github.com/go-chi/chi/v5"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
)

// Routes mounts the SMS page, the send action and /templates.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeSMS)
	r.Post("/send", h.HandleSend)
	r.Mount("/templates", crud.Routes(h.Templates))

	return r
}
