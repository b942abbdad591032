// internal/app/features/reports/handler.go
package reports

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/seed"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const Base = "/reports"

var reportTypes = []string{"Financial", "Membership", "Performance", "Events"}

// Handler serves the Reports & Analytics page. The generated-report
// modals come from the generic Crud handler; the charts are drawn from the
// trend and membership figures in the seed fixture.
type Handler struct {
	Set       *collections.Set
	Fixture   *seed.Fixture
	Crud      *crud.Handler[models.Report]
	Downloads *shared.Downloads

	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, fx *seed.Fixture, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	res := shared.ReportResource(set, logger, shared.ReportSpec{
		Base:     Base,
		Plural:   "Reports",
		Subtitle: "Generate insights and download reports across all modules",
		Types:    reportTypes,
		Store:    set.Reports,
		Badge:    "report",
	})
	return &Handler{
		Set:     set,
		Fixture: fx,
		Crud:    crud.NewHandler(res, errLog, flasher, logger),
		Downloads: &shared.Downloads{
			Store:  set.Reports,
			Base:   Base,
			ErrLog: errLog,
			Flash:  flasher,
			Log:    logger,
		},
		ErrLog: errLog,
		Log:    logger,
	}
}

type category struct {
	Title   string
	Desc    string
	Tone    string
	Reports []string
}

var categories = []category{
	{Title: "Financial Reports", Desc: "Collections, remittances, and expenditure", Tone: "ok",
		Reports: []string{"Monthly Collections", "Quarterly Remittances", "Annual Financial Statement"}},
	{Title: "Membership Reports", Desc: "Growth, demographics, and attendance", Tone: "info",
		Reports: []string{"Membership Growth", "Clergy Statistics", "Attendance Trends"}},
	{Title: "Branch Performance", Desc: "Conference, district, and society metrics", Tone: "warn",
		Reports: []string{"Conference Performance", "District Comparison", "Society Rankings"}},
	{Title: "Event Reports", Desc: "Event attendance and participation", Tone: "danger",
		Reports: []string{"Event Attendance", "Registration Stats", "Annual Events Summary"}},
}

// scope is the conference a report page was opened for.
type scope struct {
	ID    int64
	Name  string
	Stats []crud.Stat
}

type pageData struct {
	viewdata.BaseVM
	Base       string
	Categories []category
	Summary    []crud.Stat
	Rows       []shared.ReportRow
	ReturnURL  string

	Years         []int
	Year          int
	TrendURL      string
	MembershipURL string

	Scope *scope
}

// ServeReports renders the analytics page: summary cards, the collections
// trend for the selected year, membership by region and recent reports.
// With ?conference={id} the page opens on that conference's figures.
//
// Route: GET /reports
func (h *Handler) ServeReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rows, err := h.Set.Reports.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list reports failed", err, "Unable to load reports.", "/dashboard")
		return
	}

	years := h.Fixture.TrendYears()
	year := ResolveYear(years, query.Get(r, "year"))

	data := pageData{
		BaseVM:        viewdata.NewBaseVM(r, "Reports & Analytics", "/dashboard"),
		Base:          Base,
		Categories:    categories,
		Rows:          shared.ReportRows(rows),
		ReturnURL:     httpnav.CurrentPath(r),
		Years:         years,
		Year:          year,
		TrendURL:      Base + "/charts/collections?year=" + strconv.Itoa(year),
		MembershipURL: Base + "/charts/membership",
	}
	data.Subtitle = "Generate insights and download reports across all modules"

	byType := make(map[string]int)
	for _, rep := range rows {
		byType[rep.Type]++
	}
	var trendTotal float64
	for _, m := range h.Fixture.MonthlyTrend(year) {
		trendTotal += m.Amount
	}
	data.Summary = []crud.Stat{
		{Label: "Reports Generated", Value: shared.Count(len(rows))},
		{Label: "Financial", Value: shared.Count(byType["Financial"]), Tone: "ok"},
		{Label: "Membership", Value: shared.Count(byType["Membership"]), Tone: "info"},
		{Label: "Collections " + strconv.Itoa(year), Value: shared.Money(trendTotal)},
	}

	if raw := query.Get(r, "conference"); raw != "" {
		sc, err := h.scope(ctx, raw)
		switch {
		case errors.Is(err, errBadScope):
			uierrors.RenderBadRequest(w, r, "That is not a valid conference link.", Base)
			return
		case errors.Is(err, memstore.ErrNotFound):
			h.ErrLog.LogNotFound(w, r, "conference not found", err, "Conference not found.", Base)
			return
		case err != nil:
			h.ErrLog.LogServerError(w, r, "load conference scope failed", err, "Unable to load reports.", Base)
			return
		}
		data.Scope = sc
		data.Subtitle = "Reports for " + sc.Name
	}

	templates.Render(w, r, "reports_page", data)
}

var errBadScope = errors.New("invalid conference id")

func (h *Handler) scope(ctx context.Context, raw string) (*scope, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, errBadScope
	}
	conf, err := h.Set.Conferences.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tree, err := Tree(ctx, h.Set, conf)
	if err != nil {
		return nil, err
	}
	var societies, members int
	for _, b := range tree {
		societies += len(b.Societies)
		for _, s := range b.Societies {
			members += s.Members
		}
	}
	return &scope{
		ID:   conf.ID,
		Name: conf.Name,
		Stats: []crud.Stat{
			{Label: "Districts", Value: shared.Count(len(tree))},
			{Label: "Societies", Value: shared.Count(societies)},
			{Label: "Members", Value: shared.Count(members)},
		},
	}, nil
}

// ResolveYear picks the trend year from a ?year= value, falling back to the
// newest year with data. years must be newest first.
func ResolveYear(years []int, raw string) int {
	if len(years) == 0 {
		return 0
	}
	if y, err := strconv.Atoi(raw); err == nil && slices.Contains(years, y) {
		return y
	}
	return years[0]
}
