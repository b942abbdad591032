package calendar_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ohenegyan12/church-management/internal/app/system/calendar"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_Layout(t *testing.T) {
	g := calendar.Build(calendar.YM{Year: 2024, Month: time.March}, day(2024, 3, 10), nil)

	if g.Label != "March 2024" {
		t.Errorf("Label = %q", g.Label)
	}
	if len(g.Cells) != 31 {
		t.Errorf("expected 31 days, got %d", len(g.Cells))
	}
	// 1 March 2024 was a Friday.
	if g.Leading != 5 || len(g.Blanks()) != 5 {
		t.Errorf("Leading = %d", g.Leading)
	}
	if !g.Cells[9].IsToday {
		t.Error("10 March should be today")
	}
	if g.Prev != (calendar.YM{Year: 2024, Month: time.February}) || g.Next != (calendar.YM{Year: 2024, Month: time.April}) {
		t.Errorf("prev/next = %+v %+v", g.Prev, g.Next)
	}
	if g.PrevYear.Year != 2023 || g.NextYear.Year != 2025 || g.NextYear.Month != time.March {
		t.Errorf("year nav = %+v %+v", g.PrevYear, g.NextYear)
	}
}

func TestBuild_LeapFebruaryAndYearWrap(t *testing.T) {
	g := calendar.Build(calendar.YM{Year: 2024, Month: time.February}, time.Time{}, nil)
	if len(g.Cells) != 29 {
		t.Errorf("Feb 2024 has 29 days, got %d", len(g.Cells))
	}
	g = calendar.Build(calendar.YM{Year: 2024, Month: time.December}, time.Time{}, nil)
	if g.Next != (calendar.YM{Year: 2025, Month: time.January}) {
		t.Errorf("Next = %+v", g.Next)
	}
}

func TestBuild_MarksDayOnlyWhenYearMonthDayMatch(t *testing.T) {
	starts := []time.Time{
		day(2024, 3, 15),
		day(2024, 3, 15),
		day(2024, 4, 15), // same day, other month
		day(2023, 3, 20), // same month, other year
		day(2024, 3, 28),
	}
	g := calendar.Build(calendar.YM{Year: 2024, Month: time.March}, time.Time{}, starts)

	for _, c := range g.Cells {
		want := 0
		switch c.Day {
		case 15:
			want = 2
		case 28:
			want = 1
		}
		if c.Events != want || c.HasEvent != (want > 0) {
			t.Errorf("day %d: events=%d hasEvent=%v, want %d", c.Day, c.Events, c.HasEvent, want)
		}
	}
}

func TestFromRequest(t *testing.T) {
	now := day(2026, 10, 15)

	tests := []struct {
		target string
		want   calendar.YM
	}{
		{"/events", calendar.YM{Year: 2026, Month: time.October}},
		{"/events?year=2024&month=3", calendar.YM{Year: 2024, Month: time.March}},
		{"/events?year=2024&month=13", calendar.YM{Year: 2024, Month: time.October}},
		{"/events?year=abc&month=6", calendar.YM{Year: 2026, Month: time.June}},
	}
	for _, tt := range tests {
		if got := calendar.FromRequest(httptest.NewRequest("GET", tt.target, nil), now); got != tt.want {
			t.Errorf("FromRequest(%q) = %+v, want %+v", tt.target, got, tt.want)
		}
	}
}

func TestYMQuery(t *testing.T) {
	if q := (calendar.YM{Year: 2024, Month: time.March}).Query(); q != "year=2024&month=3" {
		t.Errorf("Query = %q", q)
	}
}
