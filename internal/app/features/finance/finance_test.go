package finance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/finance"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	settingsstore "github.com/ohenegyan12/church-management/internal/app/store/settings"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*finance.Handler, *collections.Set) {
	t.Helper()
	testutil.BootTemplates(t)
	set, _ := testutil.SeededSet(t)
	logger := zap.NewNop()
	return finance.NewHandler(set, settingsstore.New(set.Settings), uierrors.NewErrorLogger(logger), nil, logger), set
}

func TestCreatePayment_AssignsReference(t *testing.T) {
	h, set := newTestHandler(t)

	form := url.Values{
		"payer":  {"Bethel AME Church"},
		"amount": {"1,500.00"},
		"method": {"Cash"},
		"date":   {"2024-03-10"},
		"status": {"pending"},
	}
	rec := httptest.NewRecorder()
	h.PaymentsCrud.HandleCreate(rec, testutil.NewFormRequest(finance.PaymentsBase, form))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	rows, _ := set.Payments.Find(context.Background(), func(p models.Payment) bool { return p.Payer == "Bethel AME Church" })
	if len(rows) != 1 {
		t.Fatalf("got %d payments", len(rows))
	}
	if rows[0].Reference != "PAY-2024-006" {
		t.Errorf("Reference = %q, want PAY-2024-006", rows[0].Reference)
	}
	if rows[0].Amount != 1500 {
		t.Errorf("Amount = %v", rows[0].Amount)
	}
}

func TestCreatePayment_KeepsGivenReference(t *testing.T) {
	h, set := newTestHandler(t)

	form := url.Values{
		"reference": {"CHQ-7781"},
		"payer":     {"Bethel AME Church"},
		"amount":    {"200"},
		"method":    {"Cheque"},
		"date":      {"2024-03-10"},
		"status":    {"completed"},
	}
	rec := httptest.NewRecorder()
	h.PaymentsCrud.HandleCreate(rec, testutil.NewFormRequest(finance.PaymentsBase, form))

	rows, _ := set.Payments.Find(context.Background(), func(p models.Payment) bool { return p.Reference == "CHQ-7781" })
	if len(rows) != 1 {
		t.Errorf("got %d payments with the given reference", len(rows))
	}
}

func TestCreateCollection_ZeroAmountRejected(t *testing.T) {
	h, set := newTestHandler(t)
	before, _ := set.Collections.Count(context.Background())

	form := url.Values{
		"type":   {"Love Feast"},
		"source": {"Tema District"},
		"amount": {"0"},
		"date":   {"2024-03-01"},
		"status": {"completed"},
	}
	rec := httptest.NewRecorder()
	h.CollectionsCrud.HandleCreate(rec, testutil.NewFormRequest(finance.CollectionsBase, form))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Amount must be greater than 0.") {
		t.Error("zero amount error not shown")
	}
	if after, _ := set.Collections.Count(context.Background()); after != before {
		t.Error("a zero amount should be rejected")
	}
}

func TestByType(t *testing.T) {
	points := finance.ByType([]models.Collection{
		{Type: "Love Feast", Amount: 100, Status: models.StatusCompleted},
		{Type: "Love Feast", Amount: 50, Status: models.StatusCompleted},
		{Type: "Love Feast", Amount: 999, Status: models.StatusPending},
		{Type: "Harvest", Amount: 70, Status: models.StatusCompleted},
	})
	if len(points) != len(finance.CollectionTypes)+1 {
		t.Fatalf("got %d points", len(points))
	}
	for _, p := range points {
		switch p.Label {
		case "Love Feast":
			if p.Value != 150 {
				t.Errorf("Love Feast = %v, want 150", p.Value)
			}
		case "Harvest":
			if p.Value != 70 {
				t.Errorf("Harvest = %v, want 70", p.Value)
			}
		}
	}
	if points[len(points)-1].Label != "Harvest" {
		t.Error("unknown types should follow the standard ones")
	}
}

func TestServeChart(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeChart(rec, httptest.NewRequest("GET", finance.ReportsBase+"/chart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Collections by Type") {
		t.Error("chart title missing")
	}
}

func TestServeReceipt_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", finance.PaymentsBase+"/999/receipt", nil), "id", "999")
	rec := httptest.NewRecorder()
	h.ServeReceipt(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServeReceipt_Render(t *testing.T) {
	h, _ := newTestHandler(t)

	// Seed payment 1 was paid by mobile money.
	req := testutil.WithChiURLParam(httptest.NewRequest("GET", finance.PaymentsBase+"/1/receipt", nil), "id", "1")
	rec := httptest.NewRecorder()
	h.ServeReceipt(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Payment Receipt",
		"A.M.E. Zion Church Ghana",
		"PAY-2024-001",
		"GH₵ 5,000.00",
		"Paid to MTN Mobile Money",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestServeReports_Render(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeReports(rec, httptest.NewRequest("GET", finance.ReportsBase, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Payments Received",
		// Payments 1, 2 and 4 are completed.
		"GH₵ 11,300.00",
		`src="/finance/reports/chart"`,
		"Generated Reports",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestPaymentsList_ShowsReceiptAction(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.PaymentsCrud.ServeList(rec, httptest.NewRequest("GET", finance.PaymentsBase, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `href="/finance/payments/3/receipt"`) {
		t.Error("receipt link missing")
	}
	if !strings.Contains(body, "Showing 1-5 of 5") {
		t.Error("pager missing")
	}
}
