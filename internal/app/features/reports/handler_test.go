package reports_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/reports"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*reports.Handler, *collections.Set) {
	t.Helper()
	testutil.BootTemplates(t)
	set, fx := testutil.SeededSet(t)
	logger := zap.NewNop()
	return reports.NewHandler(set, fx, uierrors.NewErrorLogger(logger), nil, logger), set
}

func TestResolveYear(t *testing.T) {
	years := []int{2024, 2023, 2022}
	tests := []struct {
		raw  string
		want int
	}{
		{"", 2024},
		{"2023", 2023},
		{"2022", 2022},
		{"1999", 2024},
		{"abc", 2024},
	}
	for _, tt := range tests {
		if got := reports.ResolveYear(years, tt.raw); got != tt.want {
			t.Errorf("ResolveYear(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
	if got := reports.ResolveYear(nil, "2024"); got != 0 {
		t.Errorf("ResolveYear(nil) = %d, want 0", got)
	}
}

func TestServeCollectionsChart_Year(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeCollectionsChart(rec, httptest.NewRequest("GET", "/reports/charts/collections?year=2022", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Collections Trend (2022)") {
		t.Error("expected the 2022 trend title")
	}
}

func TestServeMembershipChart(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeMembershipChart(rec, httptest.NewRequest("GET", "/reports/charts/membership", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Greater Accra") {
		t.Error("expected a region slice in the chart")
	}
}

func TestServeReports_UnknownConference(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeReports(rec, httptest.NewRequest("GET", "/reports?conference=999", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServeReports_BadConference(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeReports(rec, httptest.NewRequest("GET", "/reports?conference=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMembershipCSV(t *testing.T) {
	set := testutil.NewSet(t)
	fx := testutil.NewFixtures(t, set)
	conf := fx.CreateConference("Volta Conference", "Rt. Rev. Test")
	fx.CreateConference("Other Conference", "Rt. Rev. Other")
	fx.CreateDistrict("Ho District", "volta conference")
	fx.CreateDistrict("Far District", "Other Conference")
	fx.CreateSociety("Zion Ho", "Ho District", 120)
	fx.CreateSociety("Bethel Ho", "Ho District", 80)
	fx.CreateSociety("Far Society", "Far District", 10)

	logger := zap.NewNop()
	h := reports.NewHandler(set, nil, uierrors.NewErrorLogger(logger), nil, logger)

	rec := httptest.NewRecorder()
	q := url.Values{"conference": {formatID(conf.ID)}}
	h.ServeMembershipCSV(rec, httptest.NewRequest("GET", "/reports/membership.csv?"+q.Encode(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment;") {
		t.Error("expected an attachment")
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "Volta Conference" || rows[1][1] != "Ho District" || rows[1][4] != "120" {
		t.Errorf("unexpected row: %v", rows[1])
	}
}

func TestMembershipCSV_UnknownConference(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeMembershipCSV(rec, httptest.NewRequest("GET", "/reports/membership.csv?conference=999", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGenerateReport_FillsDefaults(t *testing.T) {
	h, set := newTestHandler(t)
	before, _ := set.Reports.Count(context.Background())

	form := url.Values{"type": {"Membership"}, "period": {"Q1 2024"}}
	rec := httptest.NewRecorder()
	h.Crud.HandleCreate(rec, testutil.NewFormRequest(reports.Base, form))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	rows, _ := set.Reports.List(context.Background())
	if len(rows) != before+1 {
		t.Fatalf("got %d reports, want %d", len(rows), before+1)
	}
	got := rows[len(rows)-1]
	if got.Name != "Q1 2024 Membership Report" {
		t.Errorf("Name = %q", got.Name)
	}
	if !got.Generated.Equal(testutil.Now) {
		t.Errorf("Generated = %v, want %v", got.Generated, testutil.Now)
	}
}

func TestServeReports_Render(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeReports(rec, httptest.NewRequest("GET", "/reports", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Reports &amp; Analytics",
		"Collections Trend (2024)",
		`src="/reports/charts/collections?year=2024"`,
		`href="/reports/membership.csv"`,
		"Q4 2023 Membership Growth Report",
		"Quarterly Remittances",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestServeReports_ConferenceScope(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeReports(rec, httptest.NewRequest("GET", "/reports?conference=1&year=2023", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Reports for Greater Accra Conference",
		"<h2>Greater Accra Conference</h2>",
		`<option value="2023" selected>`,
		`<input type="hidden" name="conference" value="1">`,
		`href="/reports/membership.csv?conference=1"`,
		"GH₵ 687,000.00",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
