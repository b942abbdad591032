package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ohenegyan12/church-management/internal/app/seed"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

// Now is the fixed clock used by test stores: 15 March 2024, the month the
// seed data is centred on.
var Now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestContext returns a context with a short deadline for store calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// NewSet returns empty collections on a fresh store whose clock reads Now.
func NewSet(t *testing.T) *collections.Set {
	t.Helper()
	return collections.Open(memstore.New(memstore.WithClock(func() time.Time { return Now })))
}

// SeededSet returns collections loaded from the embedded seed fixture.
func SeededSet(t *testing.T) (*collections.Set, *seed.Fixture) {
	t.Helper()
	set := NewSet(t)
	ctx, cancel := TestContext()
	defer cancel()
	fx, err := seed.Load(ctx, set, zap.NewNop())
	if err != nil {
		t.Fatalf("seed.Load: %v", err)
	}
	return set, fx
}

// Fixtures creates individual records for tests.
type Fixtures struct {
	set *collections.Set
	t   *testing.T
}

// NewFixtures creates a new Fixtures instance for set.
func NewFixtures(t *testing.T, set *collections.Set) *Fixtures {
	t.Helper()
	return &Fixtures{set: set, t: t}
}

// Set returns the underlying collections for direct access in tests.
func (f *Fixtures) Set() *collections.Set { return f.set }

func insert[T any](f *Fixtures, c *memstore.Collection[T], rec T) T {
	f.t.Helper()
	ctx, cancel := TestContext()
	defer cancel()
	out, err := c.Insert(ctx, rec)
	if err != nil {
		f.t.Fatalf("insert into %s: %v", c.Name(), err)
	}
	return out
}

// CreateConference inserts an active conference.
func (f *Fixtures) CreateConference(name, bishop string) models.Conference {
	f.t.Helper()
	return insert(f, f.set.Conferences, models.Conference{
		Name:        name,
		Bishop:      bishop,
		Region:      "Greater Accra",
		Email:       "office@example.org",
		Established: "1990",
		Status:      models.StatusActive,
	})
}

// CreateDistrict inserts an active district under conference.
func (f *Fixtures) CreateDistrict(name, conference string) models.District {
	f.t.Helper()
	return insert(f, f.set.Districts, models.District{
		Name:           name,
		Conference:     conference,
		Superintendent: "Very Rev. Test",
		Status:         models.StatusActive,
	})
}

// CreateSociety inserts an active society under district.
func (f *Fixtures) CreateSociety(name, district string, members int) models.Society {
	f.t.Helper()
	return insert(f, f.set.Societies, models.Society{
		Name:     name,
		District: district,
		Pastor:   "Rev. Test",
		Members:  members,
		Status:   models.StatusActive,
	})
}

// CreateEvent inserts an upcoming event spanning start to end.
func (f *Fixtures) CreateEvent(title string, start, end time.Time) models.Event {
	f.t.Helper()
	return insert(f, f.set.Events, models.Event{
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Location:  "Head Office",
		Type:      "Meeting",
		Status:    models.StatusUpcoming,
	})
}

// CreateDocument inserts a document in category.
func (f *Fixtures) CreateDocument(name, category string) models.Document {
	f.t.Helper()
	return insert(f, f.set.Documents, models.Document{
		Name:       name,
		FileType:   "PDF",
		Category:   category,
		Size:       "1.2 MB",
		UploadedBy: "Admin",
		Date:       Now,
	})
}

// CreateMemo inserts a memo with the given status.
func (f *Fixtures) CreateMemo(subject, status string) models.Memo {
	f.t.Helper()
	return insert(f, f.set.Memos, models.Memo{
		Subject:  subject,
		From:     "General Secretary",
		To:       "All Districts",
		Date:     Now,
		Priority: "medium",
		Status:   status,
		Body:     "<p>Body</p>",
	})
}

// CreateLeaveRequest inserts a pending leave request.
func (f *Fixtures) CreateLeaveRequest(employee string) models.LeaveRequest {
	f.t.Helper()
	return insert(f, f.set.LeaveRequests, models.LeaveRequest{
		Employee: employee,
		Type:     "Annual Leave",
		From:     Now,
		To:       Now.AddDate(0, 0, 4),
		Status:   models.StatusPending,
	})
}

// CreateNotification inserts an unread notification.
func (f *Fixtures) CreateNotification(title string) models.Notification {
	f.t.Helper()
	return insert(f, f.set.Notifications, models.Notification{
		Title:   title,
		Message: title,
		Type:    "info",
		Time:    "just now",
	})
}
