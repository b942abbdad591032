// Package seed loads the embedded mock data into the in-memory store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"time"

	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var fixture []byte

// Fixture mirrors seed.yaml.
type Fixture struct {
	Settings           models.Settings           `yaml:"settings"`
	Conferences        []models.Conference       `yaml:"conferences"`
	Districts          []models.District         `yaml:"districts"`
	Societies          []models.Society          `yaml:"societies"`
	Clergy             []models.Clergy           `yaml:"clergy"`
	LayOfficers        []models.LayOfficer       `yaml:"lay_officers"`
	Staff              []models.Staff            `yaml:"staff"`
	Employees          []models.Employee         `yaml:"employees"`
	LeaveRequests      []models.LeaveRequest     `yaml:"leave_requests"`
	Collections        []models.Collection       `yaml:"collections"`
	Payments           []models.Payment          `yaml:"payments"`
	FinanceReports     []models.Report           `yaml:"finance_reports"`
	Reports            []models.Report           `yaml:"reports"`
	MonthlyCollections map[int][]float64         `yaml:"monthly_collections"`
	Membership         []models.MembershipShare  `yaml:"membership"`
	Events             []models.Event            `yaml:"events"`
	Memos              []models.Memo             `yaml:"memos"`
	Documents          []models.Document         `yaml:"documents"`
	SMSTemplates       []models.SMSTemplate      `yaml:"sms_templates"`
	Notifications      []models.Notification     `yaml:"notifications"`
	Activities         []models.Activity         `yaml:"activities"`
	Users              []models.User             `yaml:"users"`
	Roles              []models.Role             `yaml:"roles"`
}

// Parse decodes the embedded fixture.
func Parse() (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(fixture, &f); err != nil {
		return nil, fmt.Errorf("parse seed fixture: %w", err)
	}
	return &f, nil
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlyTrend returns the collections trend for year, January first.
func (f *Fixture) MonthlyTrend(year int) []models.MonthlyCollection {
	amounts := f.MonthlyCollections[year]
	out := make([]models.MonthlyCollection, 0, len(amounts))
	for i, a := range amounts {
		if i >= len(monthNames) {
			break
		}
		out = append(out, models.MonthlyCollection{Year: year, Month: monthNames[i], Amount: a})
	}
	return out
}

// TrendYears returns the years with trend data, newest first.
func (f *Fixture) TrendYears() []int {
	years := make([]int, 0, len(f.MonthlyCollections))
	for y := range f.MonthlyCollections {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Load parses the fixture and inserts every record into set. All seeded
// records share one creation time so ordering by creation keeps the
// fixture's order. The parsed fixture is returned for the chart data it
// carries.
func Load(ctx context.Context, set *collections.Set, logger *zap.Logger) (*Fixture, error) {
	f, err := Parse()
	if err != nil {
		return nil, err
	}
	at := set.DB.Now()

	if f.Settings.ID == 0 {
		f.Settings.ID = 1
	}
	f.Settings.CreatedAt = at
	if _, err := set.Settings.Insert(ctx, f.Settings); err != nil {
		return nil, fmt.Errorf("seed settings: %w", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{collections.Conferences, func() (int, error) { return insertAll(ctx, set.Conferences, f.Conferences, at) }},
		{collections.Districts, func() (int, error) { return insertAll(ctx, set.Districts, f.Districts, at) }},
		{collections.Societies, func() (int, error) { return insertAll(ctx, set.Societies, f.Societies, at) }},
		{collections.Clergy, func() (int, error) { return insertAll(ctx, set.Clergy, f.Clergy, at) }},
		{collections.LayOfficers, func() (int, error) { return insertAll(ctx, set.LayOfficers, f.LayOfficers, at) }},
		{collections.Staff, func() (int, error) { return insertAll(ctx, set.Staff, f.Staff, at) }},
		{collections.Employees, func() (int, error) { return insertAll(ctx, set.Employees, f.Employees, at) }},
		{collections.LeaveRequests, func() (int, error) { return insertAll(ctx, set.LeaveRequests, f.LeaveRequests, at) }},
		{collections.FinanceCollections, func() (int, error) { return insertAll(ctx, set.Collections, f.Collections, at) }},
		{collections.Payments, func() (int, error) { return insertAll(ctx, set.Payments, f.Payments, at) }},
		{collections.FinanceReports, func() (int, error) { return insertAll(ctx, set.FinanceReports, f.FinanceReports, at) }},
		{collections.Reports, func() (int, error) { return insertAll(ctx, set.Reports, f.Reports, at) }},
		{collections.Events, func() (int, error) { return insertAll(ctx, set.Events, f.Events, at) }},
		{collections.Memos, func() (int, error) { return insertAll(ctx, set.Memos, f.Memos, at) }},
		{collections.Documents, func() (int, error) { return insertAll(ctx, set.Documents, f.Documents, at) }},
		{collections.SMSTemplates, func() (int, error) { return insertAll(ctx, set.SMSTemplates, f.SMSTemplates, at) }},
		{collections.Notifications, func() (int, error) { return insertAll(ctx, set.Notifications, f.Notifications, at) }},
		{collections.Activities, func() (int, error) { return insertAll(ctx, set.Activities, f.Activities, at) }},
		{collections.Users, func() (int, error) { return insertAll(ctx, set.Users, f.Users, at) }},
		{collections.Roles, func() (int, error) { return insertAll(ctx, set.Roles, f.Roles, at) }},
	}

	total := 0
	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", s.name, err)
		}
		total += n
	}

	logger.Info("seed data loaded",
		zap.Int("records", total),
		zap.Int("collections", len(steps)+1))
	return f, nil
}

func insertAll[T any, P interface {
	*T
	Record() *models.Meta
}](ctx context.Context, c *memstore.Collection[T], rows []T, at time.Time) (int, error) {
	for i := range rows {
		P(&rows[i]).Record().CreatedAt = at
		if _, err := c.Insert(ctx, rows[i]); err != nil {
			return i, err
		}
	}
	return len(rows), nil
}
