// Package dashboardstats computes the dashboard's headline figures from the
// in-memory collections.
package dashboardstats

import (
	"context"
	"sort"
	"time"

	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/domain/models"
)

// Stats holds the four stat-card values.
type Stats struct {
	Congregations int
	ActiveClergy  int
	Members       int

	// CollectionsMonth is the month the collections figure covers: the month
	// of the most recent recorded collection.
	CollectionsMonth  time.Time
	CollectionsAmount float64
}

// Compute reads the collections and returns the dashboard stats.
func Compute(ctx context.Context, set *collections.Set) (Stats, error) {
	var s Stats

	n, err := set.Societies.Count(ctx)
	if err != nil {
		return s, err
	}
	s.Congregations = n

	active, err := set.Clergy.Find(ctx, func(c models.Clergy) bool { return c.Status == models.StatusActive })
	if err != nil {
		return s, err
	}
	s.ActiveClergy = len(active)

	confs, err := set.Conferences.List(ctx)
	if err != nil {
		return s, err
	}
	for _, c := range confs {
		s.Members += c.Members
	}

	cols, err := set.Collections.List(ctx)
	if err != nil {
		return s, err
	}
	s.CollectionsMonth, s.CollectionsAmount = latestMonthTotal(cols)

	return s, nil
}

// latestMonthTotal sums completed collections in the month of the newest
// collection.
func latestMonthTotal(cols []models.Collection) (time.Time, float64) {
	var latest time.Time
	for _, c := range cols {
		if c.Date.After(latest) {
			latest = c.Date
		}
	}
	if latest.IsZero() {
		return latest, 0
	}
	month := time.Date(latest.Year(), latest.Month(), 1, 0, 0, 0, 0, time.UTC)
	var total float64
	for _, c := range cols {
		if c.Status != models.StatusCompleted {
			continue
		}
		if c.Date.Year() == month.Year() && c.Date.Month() == month.Month() {
			total += c.Amount
		}
	}
	return month, total
}

// UpcomingEvents returns up to limit events with status upcoming, earliest
// first.
func UpcomingEvents(ctx context.Context, set *collections.Set, limit int) ([]models.Event, error) {
	rows, err := set.Events.Find(ctx, func(e models.Event) bool { return e.Status == models.StatusUpcoming })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].StartDate.Before(rows[j].StartDate) })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// RecentActivity returns up to limit activity entries in stored order.
func RecentActivity(ctx context.Context, set *collections.Set, limit int) ([]models.Activity, error) {
	rows, err := set.Activities.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// LogActivity appends an entry to the activity feed.
func LogActivity(ctx context.Context, set *collections.Set, badge, message string) error {
	_, err := set.Activities.Insert(ctx, models.Activity{Message: message, Badge: badge, Time: "just now"})
	return err
}
