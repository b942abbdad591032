package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ohenegyan12/church-management/internal/app/features/dashboard"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *dashboard.Handler {
	t.Helper()
	testutil.BootTemplates(t)
	set, _ := testutil.SeededSet(t)
	logger := zap.NewNop()
	return dashboard.NewHandler(set, uierrors.NewErrorLogger(logger), logger)
}

func TestNewHandler(t *testing.T) {
	if newTestHandler(t) == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestServeDashboard_CancelledContext(t *testing.T) {
	h := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	cancel()
	req := httptest.NewRequest("GET", "/dashboard", nil).WithContext(ctx)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()

	h.ServeDashboard(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestServeDashboard_Renders(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.WithUser(httptest.NewRequest("GET", "/dashboard", nil), testutil.AdminUser())
	rec := httptest.NewRecorder()

	h.ServeDashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Total Congregations",
		"New clergy ordained at Accra Central District",
		"New Year Service",
		"Record Payment",
		`href="/finance/payments/new"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}
