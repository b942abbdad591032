// internal/app/features/hr/handler.go
package hr

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/flash"
	"github.com/ohenegyan12/church-management/internal/app/system/formutil"
	"github.com/ohenegyan12/church-management/internal/app/system/metrics"
	"github.com/ohenegyan12/church-management/internal/app/system/timeouts"
	"github.com/ohenegyan12/church-management/internal/app/system/viewdata"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const Base = "/administration/hr"

// Handler serves the HR page with its two tabs. Employee and leave forms
// come from the generic Crud handlers; approve and reject are handled here.
type Handler struct {
	Set       *collections.Set
	Employees *crud.Handler[models.Employee]
	Leave     *crud.Handler[models.LeaveRequest]

	ErrLog *uierrors.ErrorLogger
	Flash  *flash.Flasher
	Log    *zap.Logger
}

func NewHandler(set *collections.Set, errLog *uierrors.ErrorLogger, flasher *flash.Flasher, logger *zap.Logger) *Handler {
	return &Handler{
		Set:       set,
		Employees: crud.NewHandler(EmployeeResource(set, logger), errLog, flasher, logger),
		Leave:     crud.NewHandler(LeaveResource(set, logger), errLog, flasher, logger),
		ErrLog:    errLog,
		Flash:     flasher,
		Log:       logger,
	}
}

type employeeRow struct {
	ID         int64
	Name       string
	Department string
	Position   string
	Joined     string
	Balance    int
	Status     string
}

type leaveRow struct {
	ID       int64
	Employee string
	Type     string
	Period   string
	Days     int
	Status   string
	Pending  bool
}

type pageData struct {
	viewdata.BaseVM
	Tab       string
	Stats     []crud.Stat
	Employees []employeeRow
	Leave     []leaveRow
	ReturnURL string
}

// ServeHR renders the employees tab, or leave requests with ?tab=leave.
//
// Route: GET /administration/hr
func (h *Handler) ServeHR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emps, err := h.Set.Employees.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list employees failed", err, "Unable to load HR records.", "/dashboard")
		return
	}
	reqs, err := h.Set.LeaveRequests.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list leave requests failed", err, "Unable to load HR records.", "/dashboard")
		return
	}

	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, "Human Resources", "/dashboard"),
		Tab:       "employees",
		ReturnURL: httpnav.CurrentPath(r),
	}
	data.Subtitle = "Manage employees and leave requests"
	if query.Get(r, "tab") == "leave" {
		data.Tab = "leave"
	}

	var onLeave, pending int
	depts := make(map[string]bool)
	for _, e := range emps {
		if e.Status == models.StatusOnLeave {
			onLeave++
		}
		depts[e.Department] = true
		data.Employees = append(data.Employees, employeeRow{
			ID:         e.ID,
			Name:       e.Name,
			Department: e.Department,
			Position:   e.Position,
			Joined:     shared.Date(e.JoinDate),
			Balance:    e.LeaveBalance,
			Status:     e.Status,
		})
	}
	for i := range reqs {
		l := &reqs[i]
		if l.Status == models.StatusPending {
			pending++
		}
		data.Leave = append(data.Leave, leaveRow{
			ID:       l.ID,
			Employee: l.Employee,
			Type:     l.Type,
			Period:   period(l),
			Days:     l.Days(),
			Status:   l.Status,
			Pending:  l.Status == models.StatusPending,
		})
	}
	data.Stats = []crud.Stat{
		{Label: "Total Employees", Value: shared.Count(len(emps))},
		{Label: "On Leave", Value: shared.Count(onLeave), Tone: "warn"},
		{Label: "Pending Requests", Value: shared.Count(pending), Tone: "info"},
		{Label: "Departments", Value: shared.Count(len(depts))},
	}

	templates.Render(w, r, "hr_page", data)
}

// HandleApprove approves a pending leave request.
//
// Route: POST /administration/hr/leave/{id}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// HandleReject rejects a pending leave request.
//
// Route: POST /administration/hr/leave/{id}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	back := Base + "?tab=leave"
	id, ok := crud.ParseID(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "That is not a valid leave request link.", back)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	req, err := Decide(ctx, h.Set, id, approve)
	switch {
	case errors.Is(err, memstore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "leave request not found", err, "That leave request no longer exists.", back)
		return
	case errors.Is(err, ErrNotPending), errors.Is(err, ErrLeaveBalance):
		h.Log.Info("leave decision refused", zap.Int64("id", id), zap.Error(err))
		h.Flash.Error(w, r, "Unable to update leave request: "+err.Error()+".")
		formutil.Redirect(w, r, back)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "decide leave request failed", err, "Unable to update the leave request.", back)
		return
	}

	action := "rejected"
	if approve {
		action = "approved"
	}
	metrics.Mutation(h.Set.LeaveRequests.Name(), action)
	h.Log.Info("leave request "+action, zap.Int64("id", id), zap.String("employee", req.Employee))
	if approve {
		h.Flash.Success(w, r, "Leave request approved")
	} else {
		h.Flash.Error(w, r, "Leave request rejected")
	}
	formutil.Redirect(w, r, back)
}
