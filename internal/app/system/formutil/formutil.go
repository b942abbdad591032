// Package formutil supports re-rendering a modal form after a failed submit.
//
// The form data struct embeds Base, echoes the posted values back and sets
// an error:
//
//	type conferenceForm struct {
//		formutil.Base
//		Name   string
//		Bishop string
//	}
//
//	data := conferenceForm{Name: in.Name, Bishop: in.Bishop}
//	formutil.SetBase(&data.Base, r, "Add Conference", "/church-structure/conferences")
//	data.SetError("Conference name is required.")
//	formutil.Render(w, r, "conference_form", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
)

// Base is the page chrome plus the modal-specific bits.
type Base struct {
	viewdata.BaseVM
	IsHTMX bool
	Error  template.HTML
}

// SetBase fills b from the request.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
	b.IsHTMX = IsHTMX(r)
}

// SetError sets the message shown above the form.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// IsHTMX reports whether the request came from htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Render sends the named template as a snippet for htmx (it is swapped into
// the #modal host) and as a full page otherwise. Full-page modal templates
// wrap themselves in the layout when .IsHTMX is false.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if IsHTMX(r) {
		templates.RenderSnippet(w, name, data)
		return
	}
	templates.Render(w, r, name, data)
}

// Redirect closes a modal after a successful submit: htmx gets HX-Redirect,
// a plain form post gets 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, to string) {
	if IsHTMX(r) {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
