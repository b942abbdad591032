// internal/app/features/societies/resource.go
package societies

import (
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const Base = "/church-structure/societies"

func Resource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.Society] {
	title := func(s *models.Society) string { return s.Name }

	district := crud.SelectField("district", "District", "required", nil,
		func(s *models.Society) *string { return &s.District })
	district.OptionsFrom = crud.OptionsOf(set.Districts, func(d models.District) string { return d.Name })

	return &crud.Resource[models.Society]{
		Base:     Base,
		Singular: "Society",
		Plural:   "Societies",
		Subtitle: "Local congregations and their pastors",
		Store:    set.Societies,
		Fields: []crud.Field[models.Society]{
			crud.StringField("name", "Society name", crud.Text, "required,max=200",
				func(s *models.Society) *string { return &s.Name }),
			district,
			crud.StringField("pastor", "Pastor", crud.Text, "required,max=200",
				func(s *models.Society) *string { return &s.Pastor }),
			crud.StringField("address", "Address", crud.Text, "max=300",
				func(s *models.Society) *string { return &s.Address }),
			crud.StringField("phone", "Phone", crud.Tel, "omitempty,phone",
				func(s *models.Society) *string { return &s.Phone }),
			crud.IntField("members", "Members", "",
				func(s *models.Society) *int { return &s.Members }),
			crud.SelectField("status", "Status", "required", []string{models.StatusActive, models.StatusInactive},
				func(s *models.Society) *string { return &s.Status }),
		},
		Columns: []crud.Column[models.Society]{
			{Label: "Society", Value: title, Primary: true},
			{Label: "District", Value: func(s *models.Society) string { return s.District }},
			{Label: "Pastor", Value: func(s *models.Society) string { return s.Pastor }},
			{Label: "Members", Value: func(s *models.Society) string { return shared.Count(s.Members) }},
			{Label: "Status", Value: func(s *models.Society) string { return s.Status }, Badge: true},
		},
		Title: title,
		Stats: func(rows []models.Society) []crud.Stat {
			var members, active int
			for _, s := range rows {
				members += s.Members
				if s.Status == models.StatusActive {
					active++
				}
			}
			return []crud.Stat{
				{Label: "Total Societies", Value: shared.Count(len(rows))},
				{Label: "Active", Value: shared.Count(active), Tone: "ok"},
				{Label: "Members", Value: shared.Count(members)},
			}
		},
		OnChange: shared.Activity(set, logger, "structure", "Society", title),
	}
}
