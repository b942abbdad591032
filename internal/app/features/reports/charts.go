// internal/app/features/reports/charts.go
package reports

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/system/charts"
)

// ServeCollectionsChart draws the monthly collections trend for ?year=.
//
// Route: GET /reports/charts/collections
func (h *Handler) ServeCollectionsChart(w http.ResponseWriter, r *http.Request) {
	year := ResolveYear(h.Fixture.TrendYears(), query.Get(r, "year"))

	trend := h.Fixture.MonthlyTrend(year)
	points := make([]charts.Point, len(trend))
	for i, m := range trend {
		points[i] = charts.Point{Label: m.Month, Value: m.Amount}
	}

	html, err := charts.Line("Collections Trend ("+strconv.Itoa(year)+")", "Monthly totals ("+shared.Currency+")", "Collections", points)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "render trend chart failed", err, "Unable to draw the chart.", Base)
		return
	}
	charts.Write(w, html)
}

// ServeMembershipChart draws membership share by region.
//
// Route: GET /reports/charts/membership
func (h *Handler) ServeMembershipChart(w http.ResponseWriter, r *http.Request) {
	points := make([]charts.Point, len(h.Fixture.Membership))
	for i, m := range h.Fixture.Membership {
		points[i] = charts.Point{Label: m.Name, Value: float64(m.Value)}
	}

	html, err := charts.Pie("Membership Distribution", "Share of members by region (%)", "Members", points)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "render membership chart failed", err, "Unable to draw the chart.", Base)
		return
	}
	charts.Write(w, html)
}
