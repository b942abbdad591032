// internal/app/features/districts/resource.go
package districts

import (
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const Base = "/church-structure/districts"

func Resource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.District] {
	title := func(d *models.District) string { return d.Name }

	conference := crud.SelectField("conference", "Conference", "required", nil,
		func(d *models.District) *string { return &d.Conference })
	conference.OptionsFrom = crud.OptionsOf(set.Conferences, func(c models.Conference) string { return c.Name })

	return &crud.Resource[models.District]{
		Base:     Base,
		Singular: "District",
		Plural:   "Districts",
		Subtitle: "Districts grouped under each conference",
		Store:    set.Districts,
		Fields: []crud.Field[models.District]{
			crud.StringField("name", "District name", crud.Text, "required,max=200",
				func(d *models.District) *string { return &d.Name }),
			conference,
			crud.StringField("superintendent", "Presiding elder", crud.Text, "required,max=200",
				func(d *models.District) *string { return &d.Superintendent }),
			crud.StringField("email", "Email", crud.Email, "omitempty,email",
				func(d *models.District) *string { return &d.Email }),
			crud.StringField("phone", "Phone", crud.Tel, "omitempty,phone",
				func(d *models.District) *string { return &d.Phone }),
			crud.IntField("societies", "Societies", "",
				func(d *models.District) *int { return &d.Societies }),
			crud.IntField("members", "Members", "",
				func(d *models.District) *int { return &d.Members }),
			crud.SelectField("status", "Status", "required", []string{models.StatusActive, models.StatusInactive},
				func(d *models.District) *string { return &d.Status }),
		},
		Columns: []crud.Column[models.District]{
			{Label: "District", Value: title, Primary: true},
			{Label: "Conference", Value: func(d *models.District) string { return d.Conference }},
			{Label: "Presiding Elder", Value: func(d *models.District) string { return d.Superintendent }},
			{Label: "Societies", Value: func(d *models.District) string { return shared.Count(d.Societies) }},
			{Label: "Members", Value: func(d *models.District) string { return shared.Count(d.Members) }},
			{Label: "Status", Value: func(d *models.District) string { return d.Status }, Badge: true},
		},
		Title: title,
		Stats: func(rows []models.District) []crud.Stat {
			var societies, members int
			for _, d := range rows {
				societies += d.Societies
				members += d.Members
			}
			return []crud.Stat{
				{Label: "Total Districts", Value: shared.Count(len(rows))},
				{Label: "Societies", Value: shared.Count(societies)},
				{Label: "Members", Value: shared.Count(members), Tone: "ok"},
			}
		},
		OnChange: shared.Activity(set, logger, "structure", "District", title),
	}
}
