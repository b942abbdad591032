// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the number of rows on one table page.
const PageSize = 10

// ParseStart extracts the human-friendly "start" query parameter (1-based index).
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	s := query.Get(r, "start")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start     int // 1-based start index (0 if no results)
	End       int // 1-based end index (0 if no results)
	PrevStart int // start value for previous page link
	NextStart int // start value for next page link
}

// ComputeRange calculates display range values given the current start index
// and number of items shown.
func ComputeRange(start, shown int) Range {
	if shown == 0 {
		return Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1}
	}

	prevStart := start - PageSize
	if prevStart < 1 {
		prevStart = 1
	}

	return Range{
		Start:     start,
		End:       start + shown - 1,
		PrevStart: prevStart,
		NextStart: start + shown,
	}
}

// Page is one window over an in-memory slice.
type Page[T any] struct {
	Rows    []T
	Total   int
	HasPrev bool
	HasNext bool
	Range
}

// Slice cuts the page beginning at the 1-based start out of rows. A start
// past the end falls back to the last full page so a deleted row never
// strands the user on an empty page.
func Slice[T any](rows []T, start int) Page[T] {
	total := len(rows)
	if start < 1 {
		start = 1
	}
	if start > total && total > 0 {
		start = ((total-1)/PageSize)*PageSize + 1
	}

	lo := start - 1
	if lo > total {
		lo = total
	}
	hi := lo + PageSize
	if hi > total {
		hi = total
	}

	window := rows[lo:hi]
	return Page[T]{
		Rows:    window,
		Total:   total,
		HasPrev: lo > 0,
		HasNext: hi < total,
		Range:   ComputeRange(start, len(window)),
	}
}
