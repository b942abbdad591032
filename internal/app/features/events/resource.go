// internal/app/features/events/resource.go
package events

import (
	"context"
	"errors"
	"time"

	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const Base = "/events"

var Types = []string{"Conference", "Convention", "Celebration", "Summit", "Revival", "Workshop", "Service"}

var statuses = []string{models.StatusUpcoming, models.StatusOngoing, models.StatusCompleted}

var errEventDates = errors.New("End date cannot be before the start date.")

// Resource is the generic CRUD for events. The calendar page replaces its
// list view. A missing end date makes a one-day event.
func Resource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.Event] {
	title := func(e *models.Event) string { return e.Title }

	status := crud.SelectField("status", "Status", "required", statuses,
		func(e *models.Event) *string { return &e.Status })

	return &crud.Resource[models.Event]{
		Base:     Base,
		Singular: "Event",
		Plural:   "Events",
		Subtitle: "Manage church events, conferences, and celebrations",
		Store:    set.Events,
		Fields: []crud.Field[models.Event]{
			crud.StringField("title", "Event Title", crud.Text, "required,max=200",
				func(e *models.Event) *string { return &e.Title }),
			crud.SelectField("type", "Event Type", "required", Types,
				func(e *models.Event) *string { return &e.Type }),
			crud.DateField("start_date", "Start Date", "required",
				func(e *models.Event) *time.Time { return &e.StartDate }),
			crud.DateField("end_date", "End Date", "",
				func(e *models.Event) *time.Time { return &e.EndDate }),
			crud.StringField("location", "Location", crud.Text, "required,max=200",
				func(e *models.Event) *string { return &e.Location }),
			crud.IntField("attendees", "Expected Attendees", "",
				func(e *models.Event) *int { return &e.Attendees }),
			status,
			crud.StringField("description", "Description", crud.TextArea, "max=2000",
				func(e *models.Event) *string { return &e.Description }),
		},
		Columns: []crud.Column[models.Event]{
			{Label: "Title", Value: title, Primary: true},
			{Label: "Date", Value: func(e *models.Event) string { return e.DateLabel() }},
			{Label: "Location", Value: func(e *models.Event) string { return e.Location }},
			{Label: "Type", Value: func(e *models.Event) string { return e.Type }},
			{Label: "Status", Value: func(e *models.Event) string { return e.Status }, Badge: true},
		},
		Title: title,
		Prepare: func(_ context.Context, e *models.Event, _ bool) error {
			if e.EndDate.IsZero() {
				e.EndDate = e.StartDate
			}
			if e.EndDate.Before(e.StartDate) {
				return errEventDates
			}
			return nil
		},
		OnChange: shared.Activity(set, logger, "event", "Event", title),
	}
}
