package crud

import (
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
)

// TableTarget is the element id htmx swaps when the search box or pager
// refreshes only the table.
const TableTarget = "crud-table"

// resVM is the part of a Resource templates need.
type resVM struct {
	Base     string
	Singular string
	Plural   string
	Subtitle string
	ReadOnly bool
	Actions  []Action
}

type fieldVM struct {
	Name        string
	Label       string
	Kind        string
	Placeholder string
	Value       string
	Required    bool
	Options     []string
}

type cellVM struct {
	Value   string
	Badge   bool
	Primary bool
}

type rowVM struct {
	ID    int64
	Title string
	Cells []cellVM
}

// listData is the view model for a resource list page.
type listData struct {
	viewdata.BaseVM

	Res     resVM
	Q       string
	Columns []string
	Rows    []rowVM
	Stats   []Stat

	// ReturnURL brings a modal back to this exact list view.
	ReturnURL string

	// Pagination
	Shown      int
	Total      int
	HasPrev    bool
	HasNext    bool
	RangeStart int
	RangeEnd   int
	PrevStart  int
	NextStart  int
}

// formData is the view model for the add and edit modals.
type formData struct {
	formutil.Base

	Res       resVM
	ID        int64
	IsNew     bool
	Action    string
	Submit    string
	Fields    []fieldVM
	ReturnURL string
}

type detailVM struct {
	Label string
	Value string
	Kind  string
}

// viewData is the view model for the details modal.
type viewData struct {
	formutil.Base

	Res         resVM
	ID          int64
	RecordTitle string
	Details     []detailVM
}

// deleteData is the view model for the delete confirmation modal.
type deleteData struct {
	formutil.Base

	Res         resVM
	ID          int64
	RecordTitle string
	Action      string
	ConfirmWord string
	Typed       string
	ReturnURL   string
}
