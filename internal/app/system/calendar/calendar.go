// Package calendar lays out a month grid for the events page.
package calendar

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
)

// Cell is one day in the displayed month.
type Cell struct {
	Day      int
	Date     time.Time
	IsToday  bool
	Events   int
	HasEvent bool
}

// YM names a month.
type YM struct {
	Year  int
	Month time.Month
}

// Query renders ym as "year=2024&month=3". It is typed as a URL so
// templates keep the separators when it lands in a query string.
func (ym YM) Query() template.URL {
	return template.URL(fmt.Sprintf("year=%d&month=%d", ym.Year, int(ym.Month)))
}

// Grid is a month laid out Sunday-first. Leading is the number of blank
// cells before day 1.
type Grid struct {
	YM
	Label    string
	Leading  int
	Cells    []Cell
	Prev     YM
	Next     YM
	PrevYear YM
	NextYear YM
}

// Blanks returns a slice of length Leading for ranging in templates.
func (g Grid) Blanks() []struct{} { return make([]struct{}, g.Leading) }

// Build lays out the month and counts, per day, the start dates that fall on
// exactly that year, month and day. End dates are ignored, so a multi-day
// event marks only its first day.
func Build(ym YM, today time.Time, starts []time.Time) Grid {
	first := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	counts := make(map[int]int)
	for _, s := range starts {
		if s.Year() == ym.Year && s.Month() == ym.Month {
			counts[s.Day()]++
		}
	}

	g := Grid{
		YM:       YM{Year: ym.Year, Month: ym.Month},
		Label:    first.Format("January 2006"),
		Leading:  int(first.Weekday()),
		Cells:    make([]Cell, 0, days),
		Prev:     shift(first, 0, -1),
		Next:     shift(first, 0, 1),
		PrevYear: shift(first, -1, 0),
		NextYear: shift(first, 1, 0),
	}
	for d := 1; d <= days; d++ {
		date := time.Date(ym.Year, ym.Month, d, 0, 0, 0, 0, time.UTC)
		g.Cells = append(g.Cells, Cell{
			Day:      d,
			Date:     date,
			IsToday:  sameDay(date, today),
			Events:   counts[d],
			HasEvent: counts[d] > 0,
		})
	}
	return g
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool { return sameDay(a, b) }

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func shift(first time.Time, years, months int) YM {
	t := first.AddDate(years, months, 0)
	return YM{Year: t.Year(), Month: t.Month()}
}

// FromRequest reads ?year=&month= and falls back to now's month for any
// missing or out-of-range value.
func FromRequest(r *http.Request, now time.Time) YM {
	ym := YM{Year: now.Year(), Month: now.Month()}
	if y, err := strconv.Atoi(query.Get(r, "year")); err == nil && y >= 1900 && y <= 9999 {
		ym.Year = y
	}
	if m, err := strconv.Atoi(query.Get(r, "month")); err == nil && m >= 1 && m <= 12 {
		ym.Month = time.Month(m)
	}
	return ym
}
