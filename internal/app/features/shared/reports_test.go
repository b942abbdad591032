package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func TestReportResource_Generate(t *testing.T) {
	testutil.BootTemplates(t)
	set := testutil.NewSet(t)
	logger := zap.NewNop()
	res := shared.ReportResource(set, logger, shared.ReportSpec{
		Base:   "/finance/reports",
		Plural: "Financial Reports",
		Types:  []string{"Collections", "Remittance"},
		Store:  set.FinanceReports,
		Badge:  "finance",
	})
	h := crud.NewHandler(res, uierrors.NewErrorLogger(logger), nil, logger)

	form := url.Values{"type": {"Collections"}, "period": {"March 2024"}}
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/finance/reports", form))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	rows, _ := set.FinanceReports.List(context.Background())
	if len(rows) != 1 {
		t.Fatalf("got %d reports", len(rows))
	}
	got := rows[0]
	if got.Name != "March 2024 Collections Report" {
		t.Errorf("Name = %q", got.Name)
	}
	if !got.Generated.Equal(testutil.Now) {
		t.Errorf("Generated = %v, want %v", got.Generated, testutil.Now)
	}
	if got.Size == "" {
		t.Error("Size should be filled in")
	}
}

func TestReportSize(t *testing.T) {
	if got := shared.ReportSize(0); got != "180 KB" {
		t.Errorf("ReportSize(0) = %q", got)
	}
	if got := shared.ReportSize(15); !strings.HasSuffix(got, "MB") {
		t.Errorf("ReportSize(15) = %q, want MB", got)
	}
}

func TestHandleDownload(t *testing.T) {
	testutil.BootTemplates(t)
	set := testutil.NewSet(t)
	ctx := context.Background()
	rep, _ := set.Reports.Insert(ctx, models.Report{Name: "Q1 Membership", Type: "Membership", Period: "Q1 2024"})

	d := &shared.Downloads{Store: set.Reports, Base: "/reports", ErrLog: uierrors.NewErrorLogger(zap.NewNop()), Log: zap.NewNop()}

	id := strconv.FormatInt(rep.ID, 10)
	req := testutil.WithChiURLParam(testutil.NewFormRequest("/reports/"+id+"/download", url.Values{}), "id", id)
	rec := httptest.NewRecorder()
	d.HandleDownload(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/reports" {
		t.Errorf("got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}

	_ = set.Reports.Delete(ctx, rep.ID)
	rec = httptest.NewRecorder()
	d.HandleDownload(rec, testutil.WithChiURLParam(testutil.NewFormRequest("/reports/"+id+"/download", url.Values{}), "id", id))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "That report no longer exists.") {
		t.Error("404 page should explain the report is gone")
	}
}
