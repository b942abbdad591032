package users_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/users"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*users.Handler, *collections.Set) {
	t.Helper()
	testutil.BootTemplates(t)
	set, _ := testutil.SeededSet(t)
	logger := zap.NewNop()
	return users.NewHandler(set, uierrors.NewErrorLogger(logger), nil, logger), set
}

func roleCount(t *testing.T, set *collections.Set, name string) int {
	t.Helper()
	rows, _ := set.Roles.Find(context.Background(), func(r models.Role) bool { return r.Name == name })
	if len(rows) != 1 {
		t.Fatalf("role %q not found", name)
	}
	return rows[0].Users
}

func TestCreateUser_CountsRole(t *testing.T) {
	h, set := newTestHandler(t)
	before := roleCount(t, set, "Finance Officer")

	form := url.Values{
		"name":   {"Abena Owusu"},
		"email":  {"a.owusu@amezion.gh"},
		"role":   {"Finance Officer"},
		"status": {models.StatusActive},
	}
	rec := httptest.NewRecorder()
	h.Crud.HandleCreate(rec, testutil.NewFormRequest(users.Base, form))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	if got := roleCount(t, set, "Finance Officer"); got != before+1 {
		t.Errorf("Finance Officer users = %d, want %d", got, before+1)
	}
	rows, _ := set.Users.Find(context.Background(), func(u models.User) bool { return u.Name == "Abena Owusu" })
	if len(rows) != 1 || rows[0].LastActive != "Just now" {
		t.Errorf("unexpected users: %+v", rows)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	h, set := newTestHandler(t)
	before, _ := set.Users.Count(context.Background())

	form := url.Values{
		"name":   {"John Again"},
		"email":  {"JOHN.DOE@amezion.gh"},
		"role":   {"Clergy"},
		"status": {models.StatusActive},
	}
	rec := httptest.NewRecorder()
	h.Crud.HandleCreate(rec, testutil.NewFormRequest(users.Base, form))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "A user with that email already exists.") {
		t.Errorf("body missing duplicate email error:\n%s", body)
	}

	if after, _ := set.Users.Count(context.Background()); after != before {
		t.Error("a duplicate email should be rejected")
	}
}

func TestEditUser_MovesRoleCount(t *testing.T) {
	h, set := newTestHandler(t)
	clergy := roleCount(t, set, "Clergy")
	district := roleCount(t, set, "District Admin")

	// Samuel Osei (id 5) is Clergy.
	form := url.Values{
		"name":   {"Samuel Osei"},
		"email":  {"s.osei@amezion.gh"},
		"role":   {"District Admin"},
		"status": {models.StatusActive},
	}
	req := testutil.WithChiURLParam(testutil.NewFormRequest(users.Base+"/5/edit", form), "id", "5")
	rec := httptest.NewRecorder()
	h.Crud.HandleEdit(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	if got := roleCount(t, set, "Clergy"); got != clergy-1 {
		t.Errorf("Clergy = %d, want %d", got, clergy-1)
	}
	if got := roleCount(t, set, "District Admin"); got != district+1 {
		t.Errorf("District Admin = %d, want %d", got, district+1)
	}
}

func TestAddRole(t *testing.T) {
	h, set := newTestHandler(t)

	form := url.Values{"name": {"Youth Coordinator"}, "permissions": {"Manage Events", "Manage Members"}}
	rec := httptest.NewRecorder()
	h.HandleAddRole(rec, testutil.NewFormRequest(users.Base+"/roles", form))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	rows, _ := set.Roles.Find(context.Background(), func(r models.Role) bool { return r.Name == "Youth Coordinator" })
	if len(rows) != 1 || rows[0].Permissions != "Manage Members, Manage Events" || rows[0].Users != 0 {
		t.Errorf("unexpected roles: %+v", rows)
	}
}

func TestAddRole_Invalid(t *testing.T) {
	h, set := newTestHandler(t)
	before, _ := set.Roles.Count(context.Background())

	for _, name := range []string{"", "Clergy"} {
		rec := httptest.NewRecorder()
		h.HandleAddRole(rec, testutil.NewFormRequest(users.Base+"/roles", url.Values{"name": {name}}))
		if rec.Code != http.StatusOK {
			t.Errorf("name %q: status = %d, want 200", name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `class="form-error"`) {
			t.Errorf("name %q: form error not shown", name)
		}
	}
	if after, _ := set.Roles.Count(context.Background()); after != before {
		t.Errorf("roles = %d, want %d", after, before)
	}
}

func TestServeUsers(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeUsers(rec, httptest.NewRequest(http.MethodGet, users.Base, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Users &amp; Roles",
		"John Doe",
		`<span class="badge badge-primary">Super Admin</span>`,
		`href="/users/5/edit"`,
		"1247 users",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestServeAddRole_Render(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, users.Base+"/roles/new", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeAddRole(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Add New Role") || !strings.Contains(body, `name="permissions" value="Manage Events"`) {
		t.Errorf("unexpected modal:\n%s", body)
	}
	if strings.Contains(body, "<html") {
		t.Error("htmx modal should not include the layout")
	}
}

func TestCrudModals_Render(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, path := range []string{"/new", "/2", "/2/edit", "/2/delete"} {
		req := httptest.NewRequest(http.MethodGet, users.Base+path, nil)
		req.Header.Set("HX-Request", "true")
		if path != "/new" {
			req = testutil.WithChiURLParam(req, "id", "2")
		}
		rec := httptest.NewRecorder()
		switch path {
		case "/new":
			h.Crud.ServeNew(rec, req)
		case "/2":
			h.Crud.ServeView(rec, req)
		case "/2/edit":
			h.Crud.ServeEdit(rec, req)
		default:
			h.Crud.ServeDelete(rec, req)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), "data-modal") {
			t.Errorf("%s: modal frame missing", path)
		}
	}
}
