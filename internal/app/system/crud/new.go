package crud

import (
	"context"
	"net/http"

	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
)

// ServeNew renders the add modal.
//
// Route: GET {base}/new
func (h *Handler[T]) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var rec T
	h.renderForm(w, r, h.fields(ctx, &rec, true, nil), 0, "")
}

// HandleCreate validates the add form and inserts the record.
//
// Route: POST {base}
func (h *Handler[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", h.Res.Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var rec T
	values, msg := h.bind(ctx, r, &rec)
	if msg == "" && h.Res.Prepare != nil {
		if err := h.Res.Prepare(ctx, &rec, true); err != nil {
			msg = err.Error()
		}
	}
	if msg != "" {
		h.renderForm(w, r, h.fields(ctx, &rec, true, values), 0, msg)
		return
	}

	saved, err := h.Res.insert(ctx, rec)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "insert "+h.Res.Collection()+" failed", err,
			"Unable to save the record.", h.Res.Base)
		return
	}

	h.changed(ctx, w, r, "created", saved, h.Res.Store.IDOf(&saved))
	formutil.Redirect(w, r, h.backURL(r))
}

// renderForm shows the add (id == 0) or edit modal.
func (h *Handler[T]) renderForm(w http.ResponseWriter, r *http.Request, fields []fieldVM, id int64, errMsg string) {
	data := formData{
		Res:       h.res(),
		ID:        id,
		IsNew:     id == 0,
		Fields:    fields,
		ReturnURL: h.backURL(r),
	}
	if id == 0 {
		formutil.SetBase(&data.Base, r, "Add "+h.Res.Singular, h.Res.Base)
		data.Action = h.Res.Base
		data.Submit = "Add " + h.Res.Singular
	} else {
		formutil.SetBase(&data.Base, r, "Edit "+h.Res.Singular, h.Res.Base)
		data.Action = editURL(h.Res.Base, id)
		data.Submit = "Save Changes"
	}
	if errMsg != "" {
		data.SetError(errMsg)
	}
	formutil.Render(w, r, "crud_form", data)
}
