// internal/app/features/members/layofficers.go
package members

import (
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const LayOfficersBase = "/members/lay-officers"

var layPositions = []string{
	"Steward", "Stewardess", "Class Leader", "Trustee",
	"Lay Delegate", "Sunday School Superintendent", "Choir Director",
}

// LayOfficerResource describes lay leaders serving in a society.
func LayOfficerResource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.LayOfficer] {
	title := func(l *models.LayOfficer) string { return l.Name }

	society := crud.SelectField("society", "Society", "required", nil,
		func(l *models.LayOfficer) *string { return &l.Society })
	society.OptionsFrom = crud.OptionsOf(set.Societies, func(s models.Society) string { return s.Name })

	return &crud.Resource[models.LayOfficer]{
		Base:     LayOfficersBase,
		Singular: "Lay Officer",
		Plural:   "Lay Officers",
		Subtitle: "Stewards, class leaders, trustees and delegates",
		Store:    set.LayOfficers,
		Fields: []crud.Field[models.LayOfficer]{
			crud.StringField("name", "Full name", crud.Text, "required,max=200",
				func(l *models.LayOfficer) *string { return &l.Name }),
			crud.SelectField("position", "Position", "required", layPositions,
				func(l *models.LayOfficer) *string { return &l.Position }),
			society,
			crud.StringField("since", "Serving since", crud.Text, "omitempty,year",
				func(l *models.LayOfficer) *string { return &l.Since }),
			crud.StringField("email", "Email", crud.Email, "omitempty,email",
				func(l *models.LayOfficer) *string { return &l.Email }),
			crud.StringField("phone", "Phone", crud.Tel, "omitempty,phone",
				func(l *models.LayOfficer) *string { return &l.Phone }),
			crud.SelectField("status", "Status", "required", []string{models.StatusActive, models.StatusInactive},
				func(l *models.LayOfficer) *string { return &l.Status }),
		},
		Columns: []crud.Column[models.LayOfficer]{
			{Label: "Name", Value: title, Primary: true},
			{Label: "Position", Value: func(l *models.LayOfficer) string { return l.Position }},
			{Label: "Society", Value: func(l *models.LayOfficer) string { return l.Society }},
			{Label: "Since", Value: func(l *models.LayOfficer) string { return l.Since }},
			{Label: "Status", Value: func(l *models.LayOfficer) string { return l.Status }, Badge: true},
		},
		Title: title,
		Stats: func(rows []models.LayOfficer) []crud.Stat {
			by := countBy(rows, func(l models.LayOfficer) string { return l.Position })
			return []crud.Stat{
				{Label: "Total Officers", Value: shared.Count(len(rows))},
				{Label: "Stewards", Value: shared.Count(by["Steward"] + by["Stewardess"])},
				{Label: "Class Leaders", Value: shared.Count(by["Class Leader"])},
				{Label: "Trustees", Value: shared.Count(by["Trustee"])},
			}
		},
		OnChange: shared.Activity(set, logger, "members", "Lay officer", title),
	}
}
