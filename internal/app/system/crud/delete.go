package crud

import (
	"context"
	"errors"
	"net/http"

	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/gates"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
)

// ServeDelete renders the confirmation modal.
//
// Route: GET {base}/{id}/delete
func (h *Handler[T]) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, id, ok := h.load(ctx, w, r)
	if !ok {
		return
	}
	h.renderDelete(w, r, &rec, id, "", "")
}

// HandleDelete removes the record once the confirmation word was typed.
// Anything else re-renders the modal and leaves the store untouched.
//
// Route: POST {base}/{id}/delete
func (h *Handler[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", h.Res.Base)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, id, ok := h.load(ctx, w, r)
	if !ok {
		return
	}

	if !gates.DeleteConfirmed(r) {
		h.renderDelete(w, r, &rec, id, r.PostFormValue(gates.ConfirmField), gates.ConfirmMessage)
		return
	}

	err := h.Res.Store.Delete(ctx, id)
	if err != nil && !errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogServerError(w, r, "delete "+h.Res.Collection()+" failed", err,
			"Unable to delete the record.", h.Res.Base)
		return
	}

	h.changed(ctx, w, r, "deleted", rec, id)
	formutil.Redirect(w, r, h.backURL(r))
}

func (h *Handler[T]) renderDelete(w http.ResponseWriter, r *http.Request, rec *T, id int64, typed, errMsg string) {
	data := deleteData{
		Res:         h.res(),
		ID:          id,
		RecordTitle: h.title(rec),
		Action:      deleteURL(h.Res.Base, id),
		ConfirmWord: gates.ConfirmWord,
		Typed:       typed,
		ReturnURL:   h.backURL(r),
	}
	formutil.SetBase(&data.Base, r, "Delete "+h.Res.Singular, h.Res.Base)
	if errMsg != "" {
		data.SetError(errMsg)
	}
	formutil.Render(w, r, "crud_delete", data)
}
