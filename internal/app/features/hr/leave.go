// internal/app/features/hr/leave.go
package hr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const LeaveBase = Base + "/leave"

var leaveTypes = []string{"Annual Leave", "Sick Leave", "Personal Leave", "Maternity Leave", "Study Leave"}

var (
	ErrNotPending   = errors.New("this leave request has already been decided")
	ErrLeaveBalance = errors.New("not enough leave balance")
	errLeaveDates   = errors.New("End date cannot be before the start date.")
)

func LeaveResource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.LeaveRequest] {
	title := func(l *models.LeaveRequest) string { return l.Type + " for " + l.Employee }

	employee := crud.StringField("employee", "Employee", crud.Select, "required",
		func(l *models.LeaveRequest) *string { return &l.Employee })
	employee.OptionsFrom = crud.OptionsOf(set.Employees, func(e models.Employee) string { return e.Name })

	return &crud.Resource[models.LeaveRequest]{
		Base:     LeaveBase,
		Singular: "Leave Request",
		Plural:   "Leave Requests",
		Subtitle: "Leave applications awaiting a decision",
		Home:     Base,
		Store:    set.LeaveRequests,
		Fields: []crud.Field[models.LeaveRequest]{
			employee,
			crud.SelectField("type", "Leave type", "required", leaveTypes,
				func(l *models.LeaveRequest) *string { return &l.Type }),
			crud.DateField("from", "From", "required",
				func(l *models.LeaveRequest) *time.Time { return &l.From }),
			crud.DateField("to", "To", "required",
				func(l *models.LeaveRequest) *time.Time { return &l.To }),
		},
		Columns: []crud.Column[models.LeaveRequest]{
			{Label: "Employee", Value: func(l *models.LeaveRequest) string { return l.Employee }, Primary: true},
			{Label: "Type", Value: func(l *models.LeaveRequest) string { return l.Type }},
			{Label: "Period", Value: period},
			{Label: "Days", Value: func(l *models.LeaveRequest) string { return shared.Count(l.Days()) }},
			{Label: "Status", Value: func(l *models.LeaveRequest) string { return l.Status }, Badge: true},
		},
		Title: title,
		Prepare: func(_ context.Context, l *models.LeaveRequest, isNew bool) error {
			if l.To.Before(l.From) {
				return errLeaveDates
			}
			if isNew {
				l.Status = models.StatusPending
			}
			return nil
		},
		OnChange: shared.Activity(set, logger, "hr", "Leave request", title),
	}
}

func period(l *models.LeaveRequest) string {
	if l.From.Equal(l.To) {
		return shared.Date(l.From)
	}
	return shared.Date(l.From) + " - " + shared.Date(l.To)
}

// Decide approves or rejects a pending leave request. Approval deducts the
// requested days from the employee's balance and is refused when the
// balance is short. An employee missing from the HR list is not charged.
func Decide(ctx context.Context, set *collections.Set, id int64, approve bool) (models.LeaveRequest, error) {
	return set.LeaveRequests.Update(ctx, id, func(l *models.LeaveRequest) error {
		if l.Status != models.StatusPending {
			return ErrNotPending
		}
		if !approve {
			l.Status = models.StatusRejected
			return nil
		}
		if err := charge(ctx, set, l.Employee, l.Days()); err != nil {
			return err
		}
		l.Status = models.StatusApproved
		return nil
	})
}

func charge(ctx context.Context, set *collections.Set, name string, days int) error {
	fn := text.Fold(strings.TrimSpace(name))
	emps, err := set.Employees.Find(ctx, func(e models.Employee) bool { return text.Fold(e.Name) == fn })
	if err != nil || len(emps) == 0 {
		return err
	}
	_, err = set.Employees.Update(ctx, emps[0].ID, func(e *models.Employee) error {
		if e.LeaveBalance < days {
			return fmt.Errorf("%w: %s has %d days left", ErrLeaveBalance, e.Name, e.LeaveBalance)
		}
		e.LeaveBalance -= days
		return nil
	})
	return err
}
