package formutil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ohenegyan12/church-management/internal/app/system/auth"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
)

func TestSetBase(t *testing.T) {
	req := httptest.NewRequest("GET", "/members/clergy/new", nil)
	req.Header.Set("HX-Request", "true")
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Name: "John Doe", Role: "Super Admin"})

	var b formutil.Base
	formutil.SetBase(&b, req, "Add Clergy", "/members/clergy")

	if b.Title != "Add Clergy" || !b.IsLoggedIn || b.UserName != "John Doe" || !b.IsHTMX {
		t.Errorf("unexpected base: %+v", b)
	}
}

func TestSetError_Escapes(t *testing.T) {
	var b formutil.Base
	b.SetError(`Name <b>required</b>`)
	if string(b.Error) != "Name &lt;b&gt;required&lt;/b&gt;" {
		t.Errorf("Error = %q", b.Error)
	}
}

func TestRedirect(t *testing.T) {
	t.Run("plain post", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/members/clergy", nil)
		rec := httptest.NewRecorder()
		formutil.Redirect(rec, req, "/members/clergy")
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/members/clergy" {
			t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
		}
	})

	t.Run("htmx", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/members/clergy", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		formutil.Redirect(rec, req, "/members/clergy")
		if rec.Code != http.StatusOK || rec.Header().Get("HX-Redirect") != "/members/clergy" {
			t.Errorf("got %d %q", rec.Code, rec.Header().Get("HX-Redirect"))
		}
	})
}
