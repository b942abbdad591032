// internal/app/features/conferences/resource.go
package conferences

import (
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

// Base is the list URL of the conferences page.
const Base = "/church-structure/conferences"

var statuses = []string{models.StatusActive, models.StatusInactive}

// Resource describes the conference record for the generic modals.
func Resource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.Conference] {
	title := func(c *models.Conference) string { return c.Name }
	return &crud.Resource[models.Conference]{
		Base:     Base,
		Singular: "Conference",
		Plural:   "Conferences",
		Subtitle: "Manage annual conferences and their bishops",
		Store:    set.Conferences,
		Fields: []crud.Field[models.Conference]{
			crud.StringField("name", "Conference name", crud.Text, "required,max=200",
				func(c *models.Conference) *string { return &c.Name }),
			crud.StringField("bishop", "Presiding bishop", crud.Text, "required,max=200",
				func(c *models.Conference) *string { return &c.Bishop }),
			crud.StringField("region", "Region", crud.Text, "max=100",
				func(c *models.Conference) *string { return &c.Region }),
			crud.StringField("address", "Address", crud.Text, "max=300",
				func(c *models.Conference) *string { return &c.Address }),
			crud.StringField("email", "Email", crud.Email, "omitempty,email",
				func(c *models.Conference) *string { return &c.Email }),
			crud.StringField("phone", "Phone", crud.Tel, "omitempty,phone",
				func(c *models.Conference) *string { return &c.Phone }),
			crud.StringField("established", "Year established", crud.Text, "omitempty,year",
				func(c *models.Conference) *string { return &c.Established }),
			crud.IntField("districts", "Districts", "",
				func(c *models.Conference) *int { return &c.Districts }),
			crud.IntField("societies", "Societies", "",
				func(c *models.Conference) *int { return &c.Societies }),
			crud.IntField("members", "Members", "",
				func(c *models.Conference) *int { return &c.Members }),
			crud.SelectField("status", "Status", "required", statuses,
				func(c *models.Conference) *string { return &c.Status }),
		},
		Columns: []crud.Column[models.Conference]{
			{Label: "Conference", Value: title, Primary: true},
			{Label: "Bishop", Value: func(c *models.Conference) string { return c.Bishop }},
			{Label: "Region", Value: func(c *models.Conference) string { return c.Region }},
			{Label: "Members", Value: func(c *models.Conference) string { return shared.Count(c.Members) }},
			{Label: "Status", Value: func(c *models.Conference) string { return c.Status }, Badge: true},
		},
		Title:    title,
		OnChange: shared.Activity(set, logger, "structure", "Conference", title),
	}
}
