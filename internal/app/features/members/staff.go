// internal/app/features/members/staff.go
package members

import (
	"time"

	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const StaffBase = "/members/staff"

// Departments is shared with the HR employee form.
var Departments = []string{"Finance", "Administration", "IT", "HR", "Communications", "Legal", "Operations"}

// StaffResource describes head-office staff.
func StaffResource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.Staff] {
	title := func(s *models.Staff) string { return s.Name }
	return &crud.Resource[models.Staff]{
		Base:     StaffBase,
		Singular: "Staff Member",
		Plural:   "Staff",
		Subtitle: "Head office staff and departments",
		Store:    set.Staff,
		Fields: []crud.Field[models.Staff]{
			crud.StringField("name", "Full name", crud.Text, "required,max=200",
				func(s *models.Staff) *string { return &s.Name }),
			crud.SelectField("department", "Department", "required", Departments,
				func(s *models.Staff) *string { return &s.Department }),
			crud.StringField("position", "Position", crud.Text, "required,max=200",
				func(s *models.Staff) *string { return &s.Position }),
			crud.DateField("hire_date", "Hire date", "",
				func(s *models.Staff) *time.Time { return &s.HireDate }),
			crud.StringField("email", "Email", crud.Email, "required,email",
				func(s *models.Staff) *string { return &s.Email }),
			crud.StringField("phone", "Phone", crud.Tel, "omitempty,phone",
				func(s *models.Staff) *string { return &s.Phone }),
			crud.SelectField("status", "Status", "required", []string{models.StatusActive, models.StatusOnLeave, models.StatusInactive},
				func(s *models.Staff) *string { return &s.Status }),
		},
		Columns: []crud.Column[models.Staff]{
			{Label: "Name", Value: title, Primary: true},
			{Label: "Department", Value: func(s *models.Staff) string { return s.Department }},
			{Label: "Position", Value: func(s *models.Staff) string { return s.Position }},
			{Label: "Hired", Value: func(s *models.Staff) string { return shared.Date(s.HireDate) }},
			{Label: "Status", Value: func(s *models.Staff) string { return s.Status }, Badge: true},
		},
		Title: title,
		Stats: func(rows []models.Staff) []crud.Stat {
			by := countBy(rows, func(s models.Staff) string { return s.Status })
			depts := countBy(rows, func(s models.Staff) string { return s.Department })
			return []crud.Stat{
				{Label: "Total Staff", Value: shared.Count(len(rows))},
				{Label: "Active", Value: shared.Count(by[models.StatusActive]), Tone: "ok"},
				{Label: "On Leave", Value: shared.Count(by[models.StatusOnLeave]), Tone: "warn"},
				{Label: "Departments", Value: shared.Count(len(depts))},
			}
		},
		OnChange: shared.Activity(set, logger, "members", "Staff member", title),
	}
}
