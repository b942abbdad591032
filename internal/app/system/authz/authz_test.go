package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/ohenegyan12/church-management/internal/app/system/auth"
	"github.com/ohenegyan12/church-management/internal/app/system/authz"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	role, name, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false without a user")
	}
	if role != "visitor" || name != "" {
		t.Errorf("got role=%q name=%q, want visitor and empty", role, name)
	}
}

func TestUserCtx_WithUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Name: "John Doe", Role: "Super Admin"})

	role, name, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "Super Admin" || name != "John Doe" {
		t.Errorf("got role=%q name=%q", role, name)
	}
}

func TestHasAnyRole(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	if authz.HasAnyRole(req, "admin") {
		t.Error("visitor should not match any role")
	}

	req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Role: "Finance Officer"})
	if !authz.HasAnyRole(req, "admin", " finance officer ") {
		t.Error("expected case-insensitive match")
	}
	if authz.HasAnyRole(req, "admin", "secretary") {
		t.Error("unexpected match")
	}
}
