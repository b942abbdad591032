// internal/app/features/events/handler.go
package events

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/calendar"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const dayTarget = "day-events"

// Handler serves the calendar page; event modals come from Crud.
type Handler struct {
	Set  *collections.Set
	Crud *crud.Handler[models.Event]

	ErrLog *uierrors.ErrorLogger
	Flash  *flash.Flasher
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Set:    set,
		Crud:   crud.NewHandler(Resource(set, logger), errLog, flasher, logger),
		ErrLog: errLog,
		Flash:  flasher,
		Log:    logger,
	}
}

type eventCard struct {
	ID        int64
	Title     string
	Date      string
	Location  string
	Type      string
	Attendees string
	Status    string
}

type pageData struct {
	viewdata.BaseVM
	Grid      calendar.Grid
	Day       int
	DayLabel  string
	DayEvents []eventCard
	Upcoming  []eventCard
	Stats     []crud.Stat
	ReturnURL string
}

// OnDay returns the events whose start date falls on year, month and day.
// Multi-day events are listed only on their first day.
func OnDay(evs []models.Event, ym calendar.YM, day int) []models.Event {
	var out []models.Event
	for _, e := range evs {
		y, m, d := e.StartDate.Date()
		if y == ym.Year && m == ym.Month && d == day {
			out = append(out, e)
		}
	}
	return out
}

// ServeCalendar renders the month grid for ?year=&month= with the upcoming
// events list. ?day= selects a day in that month and lists its events.
//
// Route: GET /events
func (h *Handler) ServeCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	evs, err := h.Set.Events.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list events failed", err, "Unable to load events.", "/dashboard")
		return
	}
	slices.SortStableFunc(evs, func(a, b models.Event) int { return a.StartDate.Compare(b.StartDate) })

	now := h.Set.Events.Now()
	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, "Events & Calendar", "/dashboard"),
		ReturnURL: httpnav.CurrentPath(r),
	}
	data.Subtitle = "Manage church events, conferences, and celebrations"
	ym := calendar.FromRequest(r, now)
	data.Grid = calendar.Build(ym, now, startDates(evs))

	if d, err := strconv.Atoi(query.Get(r, "day")); err == nil && d >= 1 && d <= len(data.Grid.Cells) {
		data.Day = d
		data.DayLabel = data.Grid.Cells[d-1].Date.Format("Monday, January 2, 2006")
		for _, e := range OnDay(evs, ym, d) {
			data.DayEvents = append(data.DayEvents, card(e))
		}
	}

	var upcoming, thisMonth, attendees int
	for _, e := range evs {
		if e.Status == models.StatusUpcoming {
			upcoming++
			attendees += e.Attendees
			data.Upcoming = append(data.Upcoming, card(e))
		}
		if y, m, _ := e.StartDate.Date(); y == ym.Year && m == ym.Month {
			thisMonth++
		}
	}
	data.Stats = []crud.Stat{
		{Label: "Total Events", Value: shared.Count(len(evs))},
		{Label: "Upcoming", Value: shared.Count(upcoming), Tone: "info"},
		{Label: "In " + data.Grid.Label, Value: shared.Count(thisMonth)},
		{Label: "Expected Attendees", Value: shared.Count(attendees), Tone: "ok"},
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == dayTarget {
		templates.RenderSnippet(w, "event_day", data)
		return
	}
	templates.Render(w, r, "events_page", data)
}

func startDates(evs []models.Event) []time.Time {
	out := make([]time.Time, len(evs))
	for i, e := range evs {
		out[i] = e.StartDate
	}
	return out
}

func card(e models.Event) eventCard {
	return eventCard{
		ID:        e.ID,
		Title:     e.Title,
		Date:      e.DateLabel(),
		Location:  e.Location,
		Type:      e.Type,
		Attendees: shared.Count(e.Attendees),
		Status:    e.Status,
	}
}
