package hr_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/ohenegyan12/church-management/internal/app/features/errors"
	"github.com/ohenegyan12/church-management/internal/app/features/hr"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"github.com/ohenegyan12/church-management/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*hr.Handler, *collections.Set) {
	t.Helper()
	testutil.BootTemplates(t)
	set, _ := testutil.SeededSet(t)
	logger := zap.NewNop()
	return hr.NewHandler(set, uierrors.NewErrorLogger(logger), nil, logger), set
}

func post(target, id string) *http.Request {
	return testutil.WithChiURLParam(testutil.NewFormRequest(target, url.Values{}), "id", id)
}

func TestApprove_DeductsBalance(t *testing.T) {
	h, set := newTestHandler(t)
	ctx := context.Background()

	// Seed request 2: Mr. Daniel Appiah, two days of sick leave, balance 18.
	rec := httptest.NewRecorder()
	h.HandleApprove(rec, post(hr.LeaveBase+"/2/approve", "2"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != hr.Base+"?tab=leave" {
		t.Errorf("Location = %q", loc)
	}

	req, _ := set.LeaveRequests.Get(ctx, 2)
	if req.Status != models.StatusApproved {
		t.Errorf("Status = %q, want approved", req.Status)
	}
	emp, _ := set.Employees.Get(ctx, 1)
	if emp.LeaveBalance != 16 {
		t.Errorf("LeaveBalance = %d, want 16", emp.LeaveBalance)
	}
}

func TestReject_LeavesBalance(t *testing.T) {
	h, set := newTestHandler(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	h.HandleReject(rec, post(hr.LeaveBase+"/3/reject", "3"))

	req, _ := set.LeaveRequests.Get(ctx, 3)
	if req.Status != models.StatusRejected {
		t.Errorf("Status = %q, want rejected", req.Status)
	}
	emp, _ := set.Employees.Get(ctx, 2)
	if emp.LeaveBalance != 15 {
		t.Errorf("LeaveBalance = %d, want 15", emp.LeaveBalance)
	}
}

func TestDecide_AlreadyDecided(t *testing.T) {
	set, _ := testutil.SeededSet(t)

	// Seed request 1 is already approved.
	_, err := hr.Decide(context.Background(), set, 1, false)
	if !errors.Is(err, hr.ErrNotPending) {
		t.Errorf("err = %v, want ErrNotPending", err)
	}
}

func TestDecide_ShortBalance(t *testing.T) {
	set := testutil.NewSet(t)
	fx := testutil.NewFixtures(t, set)
	ctx := context.Background()

	emp, _ := set.Employees.Insert(ctx, models.Employee{Name: "Ms. Ama Owusu", LeaveBalance: 2, Status: models.StatusActive})
	req := fx.CreateLeaveRequest("ms. ama owusu") // five days

	_, err := hr.Decide(ctx, set, req.ID, true)
	if !errors.Is(err, hr.ErrLeaveBalance) {
		t.Fatalf("err = %v, want ErrLeaveBalance", err)
	}
	got, _ := set.LeaveRequests.Get(ctx, req.ID)
	if got.Status != models.StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	e, _ := set.Employees.Get(ctx, emp.ID)
	if e.LeaveBalance != 2 {
		t.Errorf("LeaveBalance = %d, want 2", e.LeaveBalance)
	}
}

func TestDecide_UnknownEmployeeNotCharged(t *testing.T) {
	set := testutil.NewSet(t)
	req := testutil.NewFixtures(t, set).CreateLeaveRequest("Visiting Pastor")

	got, err := hr.Decide(context.Background(), set, req.ID, true)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Status != models.StatusApproved {
		t.Errorf("Status = %q, want approved", got.Status)
	}
}

func TestApprove_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleApprove(rec, post(hr.LeaveBase+"/99/approve", "99"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreateLeave_EndBeforeStart(t *testing.T) {
	h, set := newTestHandler(t)
	before, _ := set.LeaveRequests.Count(context.Background())

	form := url.Values{
		"employee": {"Mr. Isaac Boateng"},
		"type":     {"Annual Leave"},
		"from":     {"2024-04-10"},
		"to":       {"2024-04-01"},
	}
	rec := httptest.NewRecorder()
	h.Leave.HandleCreate(rec, testutil.NewFormRequest(hr.LeaveBase, form))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `class="form-error"`) || !strings.Contains(body, `value="2024-04-10"`) {
		t.Errorf("form should re-render with an error and the posted dates:\n%s", body)
	}

	after, _ := set.LeaveRequests.Count(context.Background())
	if after != before {
		t.Error("a request ending before it starts should be rejected")
	}
}

func TestCreateLeave_StartsPending(t *testing.T) {
	h, set := newTestHandler(t)

	form := url.Values{
		"employee": {"Mr. Isaac Boateng"},
		"type":     {"Study Leave"},
		"from":     {"2024-04-01"},
		"to":       {"2024-04-03"},
		"return":   {hr.Base + "?tab=leave"},
	}
	rec := httptest.NewRecorder()
	h.Leave.HandleCreate(rec, testutil.NewFormRequest(hr.LeaveBase, form))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != hr.Base+"?tab=leave" {
		t.Errorf("Location = %q, want the HR page", loc)
	}

	rows, _ := set.LeaveRequests.Find(context.Background(), func(l models.LeaveRequest) bool { return l.Type == "Study Leave" })
	if len(rows) != 1 || rows[0].Status != models.StatusPending {
		t.Errorf("unexpected requests: %+v", rows)
	}
}


func TestServeHR_EmployeesTab(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHR(rec, httptest.NewRequest(http.MethodGet, hr.Base, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Human Resources",
		"Mr. Daniel Appiah",
		"18 days",
		"+ Add Employee",
		`href="/administration/hr/employees/3/edit?return=%2fadministration%2fhr"`,
	} {
		if !strings.Contains(strings.ToLower(body), strings.ToLower(want)) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "/leave/2/approve") {
		t.Error("employees tab should not show leave actions")
	}
}

func TestServeHR_LeaveTab(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHR(rec, httptest.NewRequest(http.MethodGet, hr.Base+"?tab=leave", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"+ New Leave Request",
		`action="/administration/hr/leave/2/approve"`,
		`action="/administration/hr/leave/3/reject"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	// Request 1 is already approved.
	if strings.Contains(body, "/leave/1/approve") {
		t.Error("a decided request should not offer approve")
	}
}
