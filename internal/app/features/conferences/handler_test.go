package conferences_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ohenegyan12/church-management/internal/app/features/conferences"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*conferences.Handler, *collections.Set) {
	t.Helper()
	testutil.BootTemplates(t)
	set, _ := testutil.SeededSet(t)
	logger := zap.NewNop()
	return conferences.NewHandler(set, uierrors.NewErrorLogger(logger), nil, logger), set
}

func TestServeDetail_UnknownID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", conferences.Base+"/999", nil), "id", "999")
	rec := httptest.NewRecorder()
	h.ServeDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `href="`+conferences.Base+`"`) {
		t.Error("404 page should link back to the conferences list")
	}
}

func TestServeDetail_BadID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", conferences.Base+"/abc", nil), "id", "abc")
	rec := httptest.NewRecorder()
	h.ServeDetail(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServeDetail_Found(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", conferences.Base+"/1", nil), "id", "1")
	rec := httptest.NewRecorder()
	h.ServeDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d for a seeded conference", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Greater Accra Conference", "Rt. Rev. Emmanuel Asante", "Accra Central District", "Tema District"} {
		if !strings.Contains(body, want) {
			t.Errorf("detail page missing %q", want)
		}
	}
	if strings.Contains(body, "Kumasi Metropolitan District") {
		t.Error("detail page lists a district from another conference")
	}
}

func TestDistrictsOf(t *testing.T) {
	set := testutil.NewSet(t)
	f := testutil.NewFixtures(t, set)
	f.CreateDistrict("Tema District", "Greater Accra Conference")
	f.CreateDistrict("Osu District", "greater accra conference")
	f.CreateDistrict("Kumasi District", "Ashanti Conference")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	got, err := conferences.DistrictsOf(ctx, set, "Greater Accra Conference")
	if err != nil {
		t.Fatalf("DistrictsOf: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d districts, want 2", len(got))
	}
}

func TestAddConference_AppendsOneRecord(t *testing.T) {
	h, set := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	before, _ := set.Conferences.Count(ctx)

	form := url.Values{
		"name":   {"Volta Conference"},
		"bishop": {"Rt. Rev. Agbeko"},
		"status": {"active"},
	}
	rec := httptest.NewRecorder()
	h.Crud.HandleCreate(rec, testutil.HTMX(testutil.NewFormRequest(conferences.Base, form)))

	if got := rec.Header().Get("HX-Redirect"); got != conferences.Base {
		t.Errorf("HX-Redirect = %q, want %q", got, conferences.Base)
	}
	after, _ := set.Conferences.Count(ctx)
	if after != before+1 {
		t.Errorf("count = %d, want %d", after, before+1)
	}

	// The change lands in the dashboard feed.
	acts, _ := set.Activities.List(ctx)
	found := false
	for _, a := range acts {
		if a.Message == "Conference created: Volta Conference" {
			found = true
		}
	}
	if !found {
		t.Error("expected an activity entry for the new conference")
	}
}

func TestServeList_SearchSnippet(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", conferences.Base+"?q=ashanti", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", "conference-cards")
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ashanti Conference") {
		t.Error("snippet should contain the matching conference")
	}
	if strings.Contains(body, "Western Conference") {
		t.Error("snippet should drop conferences that do not match")
	}
	if strings.Contains(body, "<html") {
		t.Error("htmx search should return only the card grid")
	}
}

func TestServeList_FullPage(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithUser(httptest.NewRequest("GET", conferences.Base, nil), testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "<html")
	rec.AssertContains(t, "+ Add Conference")
	rec.AssertContains(t, "Northern Conference")
}

func TestCrudModals_Render(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name  string
		path  string
		serve http.HandlerFunc
		want  string
	}{
		{"new", conferences.Base + "/new", h.Crud.ServeNew, "Add Conference"},
		{"edit", conferences.Base + "/2/edit", h.Crud.ServeEdit, "Ashanti Conference"},
		{"delete", conferences.Base + "/2/delete", h.Crud.ServeDelete, "Type <code>delete</code> to confirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.HTMX(httptest.NewRequest("GET", tt.path, nil))
			req = testutil.WithChiURLParam(req, "id", "2")
			rec := testutil.NewRecorder()
			tt.serve(rec, req)

			rec.AssertStatus(t, http.StatusOK)
			rec.AssertContains(t, tt.want)
			rec.AssertContains(t, "data-modal")
		})
	}
}
