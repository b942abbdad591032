// internal/app/features/finance/handler.go
package finance

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	paymentstore "github.com/ohenegyan12/church-management/internal/app/store/payments"
	settingsstore "github.com/ohenegyan12/church-management/internal/app/store/settings"
	"github.com/ohenegyan12/church-management/internal/app/system/charts"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const ReportsBase = "/finance/reports"

var reportTypes = []string{"Collections", "Remittance", "Financial", "Payments"}

type Handler struct {
	Set      *collections.Set
	Payments *paymentstore.Store
	Settings *settingsstore.Store

	CollectionsCrud *crud.Handler[models.Collection]
	PaymentsCrud    *crud.Handler[models.Payment]
	ReportsCrud     *crud.Handler[models.Report]
	Downloads       *shared.Downloads

	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, settings *settingsstore.Store, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	payments := paymentstore.New(set.Payments)
	reports := shared.ReportResource(set, logger, shared.ReportSpec{
		Base:     ReportsBase,
		Plural:   "Financial Reports",
		Subtitle: "Generate and download financial statements",
		Types:    reportTypes,
		Store:    set.FinanceReports,
		Badge:    "finance",
	})
	return &Handler{
		Set:             set,
		Payments:        payments,
		Settings:        settings,
		CollectionsCrud: crud.NewHandler(CollectionResource(set, logger), errLog, flasher, logger),
		PaymentsCrud:    crud.NewHandler(PaymentResource(set, payments, logger), errLog, flasher, logger),
		ReportsCrud:     crud.NewHandler(reports, errLog, flasher, logger),
		Downloads: &shared.Downloads{
			Store:  set.FinanceReports,
			Base:   ReportsBase,
			ErrLog: errLog,
			Flash:  flasher,
			Log:    logger,
		},
		ErrLog: errLog,
		Log:    logger,
	}
}

type receiptData struct {
	formutil.Base
	Payment models.Payment
	Amount  string
	Date    string
	Org     models.Settings
}

// ServeReceipt renders a printable receipt for one payment.
//
// Route: GET /finance/payments/{id}/receipt
func (h *Handler) ServeReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid payment link.", PaymentsBase)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Set.Payments.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "payment not found", err, "That payment no longer exists.", PaymentsBase)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load payment failed", err, "Unable to load the payment.", PaymentsBase)
		return
	}
	org, err := h.Settings.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings failed", err, "Unable to load the receipt.", PaymentsBase)
		return
	}

	data := receiptData{
		Payment: p,
		Amount:  shared.Money(p.Amount),
		Date:    shared.Date(p.Date),
		Org:     org,
	}
	formutil.SetBase(&data.Base, r, "Payment Receipt", PaymentsBase)
	formutil.Render(w, r, "payment_receipt", data)
}

type reportsData struct {
	viewdata.BaseVM
	Base      string
	Singular  string
	Rows      []shared.ReportRow
	Summary   []crud.Stat
	ChartURL  string
	ReturnURL string
}

// ServeReports lists generated financial reports beside the payment
// totals and the collections-by-type chart.
//
// Route: GET /finance/reports
func (h *Handler) ServeReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rows, err := h.Set.FinanceReports.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list finance reports failed", err, "Unable to load reports.", "/dashboard")
		return
	}
	totals, err := h.Payments.Totals(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "payment totals failed", err, "Unable to load reports.", "/dashboard")
		return
	}

	data := reportsData{
		BaseVM:    viewdata.NewBaseVM(r, "Financial Reports", "/dashboard"),
		Base:      ReportsBase,
		Singular:  "Report",
		Rows:      shared.ReportRows(rows),
		ChartURL:  ReportsBase + "/chart",
		ReturnURL: httpnav.CurrentPath(r),
		Summary: []crud.Stat{
			{Label: "Payments Received", Value: shared.Money(totals[models.StatusCompleted]), Tone: "ok"},
			{Label: "Awaiting Confirmation", Value: shared.Money(totals[models.StatusPending]), Tone: "warn"},
			{Label: "Reports", Value: shared.Count(len(rows))},
		},
	}
	data.Subtitle = "Generate and download financial statements"
	templates.Render(w, r, "finance_reports", data)
}

// ServeChart renders completed collections by type as a bar chart.
//
// Route: GET /finance/reports/chart
func (h *Handler) ServeChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rows, err := h.Set.Collections.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list collections failed", err, "Unable to draw the chart.", ReportsBase)
		return
	}
	html, err := charts.Bar("Collections by Type", "Completed collections ("+shared.Currency+")", "Amount", ByType(rows))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "render chart failed", err, "Unable to draw the chart.", ReportsBase)
		return
	}
	charts.Write(w, html)
}
