package districts_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/ohenegyan12/church-management/internal/app/features/districts"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*districts.Handler, *testutil.Fixtures) {
	t.Helper()
	testutil.BootTemplates(t)
	set := testutil.NewSet(t)
	logger := zap.NewNop()
	return districts.NewHandler(set, uierrors.NewErrorLogger(logger), nil, logger), testutil.NewFixtures(t, set)
}

func TestServeDetail_UnknownID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", districts.Base+"/42", nil), "id", "42")
	rec := httptest.NewRecorder()
	h.ServeDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSocietiesOf(t *testing.T) {
	h, f := newTestHandler(t)
	f.CreateSociety("Zion Osu", "Accra Central District", 120)
	f.CreateSociety("Bethel", "ACCRA CENTRAL DISTRICT", 80)
	f.CreateSociety("Wesley Tema", "Tema District", 60)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	got, err := districts.SocietiesOf(ctx, h.Set, "Accra Central District")
	if err != nil {
		t.Fatalf("SocietiesOf: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d societies, want 2", len(got))
	}
}

func TestCreate_ConferenceMustExist(t *testing.T) {
	h, f := newTestHandler(t)
	f.CreateConference("Ashanti Conference", "Rt. Rev. Mensah")

	form := url.Values{
		"name":           {"Obuasi District"},
		"conference":     {"Volta Conference"},
		"superintendent": {"Rev. Boateng"},
		"status":         {"active"},
	}
	rec := httptest.NewRecorder()
	h.Crud.HandleCreate(rec, testutil.NewFormRequest(districts.Base, form))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `class="form-error"`) {
		t.Fatal("an unknown conference should be rejected")
	}

	form.Set("conference", "Ashanti Conference")
	rec = httptest.NewRecorder()
	h.Crud.HandleCreate(rec, testutil.NewFormRequest(districts.Base, form))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
}

func detail(h *districts.Handler, id int64, target string) *httptest.ResponseRecorder {
	sid := strconv.FormatInt(id, 10)
	req := testutil.WithChiURLParam(httptest.NewRequest("GET", target, nil), "id", sid)
	rec := httptest.NewRecorder()
	h.ServeDetail(rec, req)
	return rec
}

func TestServeDetail_PreviewsSocieties(t *testing.T) {
	h, f := newTestHandler(t)
	conf := f.CreateConference("Ashanti Conference", "Rt. Rev. Mensah")
	d := f.CreateDistrict("Obuasi District", "Ashanti Conference")
	for _, name := range []string{"Zion", "Bethel", "Wesley", "Trinity", "Grace", "Ebenezer"} {
		f.CreateSociety(name+" AME Church", "Obuasi District", 100)
	}
	f.CreateSociety("Faith AME Church", "Tema District", 50)

	rec := detail(h, d.ID, districts.Base+"/"+strconv.FormatInt(d.ID, 10))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<h1>Obuasi District</h1>",
		`href="/church-structure/conferences/` + strconv.FormatInt(conf.ID, 10) + `"`,
		"Zion AME Church",
		"Show all 6 societies",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Faith AME Church") {
		t.Error("societies of other districts should not be listed")
	}
	if got := strings.Count(body, `<td><a href="/church-structure/societies/`); got != 5 {
		t.Errorf("listed %d societies, want 5", got)
	}
}

func TestServeDetail_ShowAll(t *testing.T) {
	h, f := newTestHandler(t)
	d := f.CreateDistrict("Obuasi District", "Ashanti Conference")
	for _, name := range []string{"Zion", "Bethel", "Wesley", "Trinity", "Grace", "Ebenezer"} {
		f.CreateSociety(name+" AME Church", "Obuasi District", 100)
	}

	rec := detail(h, d.ID, districts.Base+"/"+strconv.FormatInt(d.ID, 10)+"?all=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if got := strings.Count(body, `<td><a href="/church-structure/societies/`); got != 6 {
		t.Errorf("listed %d societies, want 6", got)
	}
	if !strings.Contains(body, "Show fewer") {
		t.Error("show fewer link missing")
	}
	// No matching conference, so no breadcrumb link.
	if strings.Contains(body, `href="/church-structure/conferences/`) {
		t.Error("unexpected conference link")
	}
}
