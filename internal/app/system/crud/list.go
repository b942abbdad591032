package crud

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ohenegyan12/church-management/internal/app/system/paging"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
)

// ServeList handles GET {base} with optional ?q= search and ?start= paging.
// It supports HTMX partial refresh of the table when HX-Target is TableTarget.
func (h *Handler[T]) ServeList(w http.ResponseWriter, r *http.Request) {
	q := query.Search(r, "q")
	start := paging.ParseStart(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rows, err := h.Res.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list "+h.Res.Collection()+" failed", err,
			"Unable to load "+strings.ToLower(h.Res.Plural)+".", "/dashboard")
		return
	}

	var stats []Stat
	if h.Res.Stats != nil {
		stats = h.Res.Stats(rows)
	}

	page := paging.Slice(h.Filter(rows, q), start)

	columns := make([]string, len(h.Res.Columns))
	for i, c := range h.Res.Columns {
		columns[i] = c.Label
	}
	items := make([]rowVM, 0, len(page.Rows))
	for i := range page.Rows {
		items = append(items, h.row(&page.Rows[i]))
	}

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, h.Res.Plural, "/dashboard"),
		Res:        h.res(),
		Q:          q,
		Columns:    columns,
		Rows:       items,
		Stats:      stats,
		ReturnURL:  httpnav.CurrentPath(r),
		Shown:      len(items),
		Total:      page.Total,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		RangeStart: page.Start,
		RangeEnd:   page.End,
		PrevStart:  page.PrevStart,
		NextStart:  page.NextStart,
	}
	data.Subtitle = h.Res.Subtitle

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == TableTarget {
		templates.RenderSnippet(w, "crud_table", data)
		return
	}
	templates.Render(w, r, "crud_list", data)
}

// Filter keeps the rows where any column (or the title) contains q,
// ignoring case and accents. An empty q keeps everything.
func (h *Handler[T]) Filter(rows []T, q string) []T {
	fq := text.Fold(q)
	if fq == "" {
		return rows
	}
	out := rows[:0:0]
	for i := range rows {
		if h.matches(&rows[i], fq) {
			out = append(out, rows[i])
		}
	}
	return out
}

func (h *Handler[T]) matches(rec *T, fq string) bool {
	if h.Res.Title != nil && strings.Contains(text.Fold(h.Res.Title(rec)), fq) {
		return true
	}
	for _, c := range h.Res.Columns {
		if strings.Contains(text.Fold(c.Value(rec)), fq) {
			return true
		}
	}
	return false
}

func (h *Handler[T]) row(rec *T) rowVM {
	cells := make([]cellVM, len(h.Res.Columns))
	for i, c := range h.Res.Columns {
		cells[i] = cellVM{Value: c.Value(rec), Badge: c.Badge, Primary: c.Primary}
	}
	return rowVM{
		ID:    h.Res.Store.IDOf(rec),
		Title: h.title(rec),
		Cells: cells,
	}
}
