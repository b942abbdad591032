// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/queries/dashboardstats"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const (
	activityLimit = 5
	eventsLimit   = 3
)

type Handler struct {
	Set    *collections.Set
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Set: set, ErrLog: errLog, Log: logger}
}

type statCard struct {
	Label string
	Value string
	Note  string
	Href  string
}

type quickAction struct {
	Label string
	Href  string
}

type eventItem struct {
	ID       int64
	Title    string
	Date     string
	Location string
}

type dashboardData struct {
	viewdata.BaseVM

	Cards    []statCard
	Activity []models.Activity
	Events   []eventItem
	Actions  []quickAction
}

// quickActions open the add modal of the matching page.
var quickActions = []quickAction{
	{Label: "Record Payment", Href: "/finance/payments/new"},
	{Label: "Create Event", Href: "/events/new"},
	{Label: "Generate Report", Href: "/reports/new"},
	{Label: "Add Member", Href: "/members/clergy/new"},
}

// ServeDashboard renders the overview: stat cards, recent activity,
// upcoming events and quick actions.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	stats, err := dashboardstats.Compute(ctx, h.Set)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "compute dashboard stats failed", err, "Unable to load the dashboard.", "/")
		return
	}
	activity, err := dashboardstats.RecentActivity(ctx, h.Set, activityLimit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load activity failed", err, "Unable to load the dashboard.", "/")
		return
	}
	upcoming, err := dashboardstats.UpcomingEvents(ctx, h.Set, eventsLimit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load events failed", err, "Unable to load the dashboard.", "/")
		return
	}

	data := dashboardData{
		BaseVM:   viewdata.NewBaseVM(r, "Dashboard", "/"),
		Cards:    cards(stats),
		Activity: activity,
		Actions:  quickActions,
	}
	data.Subtitle = "Welcome back! Here's an overview of your church administration."
	for _, e := range upcoming {
		data.Events = append(data.Events, eventItem{
			ID:       e.ID,
			Title:    e.Title,
			Date:     e.DateLabel(),
			Location: e.Location,
		})
	}

	h.Log.Debug("dashboard served", zap.Int("activity", len(activity)), zap.Int("events", len(data.Events)))
	templates.Render(w, r, "dashboard", data)
}

func cards(s dashboardstats.Stats) []statCard {
	month := "No collections recorded"
	if !s.CollectionsMonth.IsZero() {
		month = s.CollectionsMonth.Format("January 2006")
	}
	return []statCard{
		{Label: "Total Congregations", Value: shared.Count(s.Congregations), Note: "Societies across all districts", Href: "/church-structure/societies"},
		{Label: "Active Clergy", Value: shared.Count(s.ActiveClergy), Note: "Serving ministers", Href: "/members/clergy"},
		{Label: "Total Members", Value: shared.Count(s.Members), Note: "Across all conferences", Href: "/church-structure/conferences"},
		{Label: "Collections", Value: shared.Money(s.CollectionsAmount), Note: month, Href: "/finance/collections"},
	}
}
