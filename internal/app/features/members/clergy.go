// internal/app/features/members/clergy.go
package members

import (
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const ClergyBase = "/members/clergy"

var (
	clergyTitles   = []string{"Bishop", "Presiding Elder", "Pastor", "Deacon", "Elder"}
	clergyLevels   = []string{models.LevelSociety, models.LevelDistrict, models.LevelConference}
	clergyStatuses = []string{models.StatusActive, models.StatusRetired, models.StatusOnLeave, models.StatusInactive}
)

// ClergyResource describes ordained ministers and where they serve.
func ClergyResource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.Clergy] {
	title := func(c *models.Clergy) string { return c.Name }
	return &crud.Resource[models.Clergy]{
		Base:     ClergyBase,
		Singular: "Clergy",
		Plural:   "Clergy",
		Subtitle: "Bishops, presiding elders, pastors and deacons",
		Store:    set.Clergy,
		Fields: []crud.Field[models.Clergy]{
			crud.StringField("name", "Full name", crud.Text, "required,max=200",
				func(c *models.Clergy) *string { return &c.Name }),
			crud.SelectField("title", "Title", "required", clergyTitles,
				func(c *models.Clergy) *string { return &c.Title }),
			crud.StringField("ordained", "Year ordained", crud.Text, "omitempty,year",
				func(c *models.Clergy) *string { return &c.Ordained }),
			crud.SelectField("assignment_level", "Assignment level", "required", clergyLevels,
				func(c *models.Clergy) *string { return &c.AssignmentLevel }),
			crud.StringField("assignment", "Current assignment", crud.Text, "required,max=200",
				func(c *models.Clergy) *string { return &c.Assignment }),
			crud.StringField("email", "Email", crud.Email, "omitempty,email",
				func(c *models.Clergy) *string { return &c.Email }),
			crud.StringField("phone", "Phone", crud.Tel, "omitempty,phone",
				func(c *models.Clergy) *string { return &c.Phone }),
			crud.SelectField("status", "Status", "required", clergyStatuses,
				func(c *models.Clergy) *string { return &c.Status }),
		},
		Columns: []crud.Column[models.Clergy]{
			{Label: "Name", Value: title, Primary: true},
			{Label: "Title", Value: func(c *models.Clergy) string { return c.Title }},
			{Label: "Assignment", Value: func(c *models.Clergy) string { return c.Assignment }},
			{Label: "Ordained", Value: func(c *models.Clergy) string { return c.Ordained }},
			{Label: "Status", Value: func(c *models.Clergy) string { return c.Status }, Badge: true},
		},
		Title: title,
		Stats: func(rows []models.Clergy) []crud.Stat {
			by := countBy(rows, func(c models.Clergy) string { return c.Status })
			return []crud.Stat{
				{Label: "Total Clergy", Value: shared.Count(len(rows))},
				{Label: "Active", Value: shared.Count(by[models.StatusActive]), Tone: "ok"},
				{Label: "On Leave", Value: shared.Count(by[models.StatusOnLeave]), Tone: "warn"},
				{Label: "Retired", Value: shared.Count(by[models.StatusRetired])},
			}
		},
		OnChange: shared.Activity(set, logger, "members", "Clergy", title),
	}
}

func countBy[T any](rows []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, r := range rows {
		out[key(r)]++
	}
	return out
}
