// internal/app/features/hr/employees.go
package hr

import (
	"time"

	"github.com/ohenegyan12/church-management/internal/app/features/members"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const EmployeesBase = Base + "/employees"

var employeeStatuses = []string{models.StatusActive, models.StatusOnLeave, models.StatusInactive}

func EmployeeResource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.Employee] {
	title := func(e *models.Employee) string { return e.Name }

	balance := crud.IntField("leave_balance", "Leave balance (days)", "", func(e *models.Employee) *int { return &e.LeaveBalance })
	balance.Default = "21"

	return &crud.Resource[models.Employee]{
		Base:     EmployeesBase,
		Singular: "Employee",
		Plural:   "Employees",
		Subtitle: "Head-office employees and their leave balances",
		Home:     Base,
		Store:    set.Employees,
		Fields: []crud.Field[models.Employee]{
			crud.StringField("name", "Full name", crud.Text, "required,max=200",
				func(e *models.Employee) *string { return &e.Name }),
			crud.SelectField("department", "Department", "required", members.Departments,
				func(e *models.Employee) *string { return &e.Department }),
			crud.StringField("position", "Position", crud.Text, "required,max=120",
				func(e *models.Employee) *string { return &e.Position }),
			crud.DateField("join_date", "Join date", "required",
				func(e *models.Employee) *time.Time { return &e.JoinDate }),
			crud.SelectField("status", "Status", "required", employeeStatuses,
				func(e *models.Employee) *string { return &e.Status }),
			balance,
		},
		Columns: []crud.Column[models.Employee]{
			{Label: "Employee", Value: title, Primary: true},
			{Label: "Department", Value: func(e *models.Employee) string { return e.Department }},
			{Label: "Position", Value: func(e *models.Employee) string { return e.Position }},
			{Label: "Joined", Value: func(e *models.Employee) string { return shared.Date(e.JoinDate) }},
			{Label: "Leave Balance", Value: func(e *models.Employee) string { return shared.Count(e.LeaveBalance) + " days" }},
			{Label: "Status", Value: func(e *models.Employee) string { return e.Status }, Badge: true},
		},
		Title:    title,
		OnChange: shared.Activity(set, logger, "hr", "Employee", title),
	}
}
