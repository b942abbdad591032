package crud

import (
	"context"
	"net/http"

	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
)

// ServeView renders the read-only details modal.
//
// Route: GET {base}/{id}
func (h *Handler[T]) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, id, ok := h.load(ctx, w, r)
	if !ok {
		return
	}

	details := make([]detailVM, 0, len(h.Res.Fields))
	for _, f := range h.Res.Fields {
		if f.HideInView {
			continue
		}
		details = append(details, detailVM{Label: f.Label, Value: f.Get(&rec), Kind: string(f.Kind)})
	}

	data := viewData{
		Res:         h.res(),
		ID:          id,
		RecordTitle: h.title(&rec),
		Details:     details,
	}
	formutil.SetBase(&data.Base, r, h.Res.Singular+" Details", h.Res.Base)
	formutil.Render(w, r, "crud_view", data)
}
