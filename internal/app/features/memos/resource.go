// internal/app/features/memos/resource.go
package memos

import (
	"context"

	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/htmlsanitize"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const Base = "/administration/memos"

// Recipients are the distribution lists a memo can go to.
var Recipients = []string{"All Staff", "All Presiding Elders", "All Conferences", "All Districts", "All Societies", "All Users"}

var priorities = []string{"low", "medium", "high"}

// Resource backs the edit and delete modals. Composing has its own form
// because it chooses between saving a draft and sending.
func Resource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.Memo] {
	title := func(m *models.Memo) string { return m.Subject }

	body := crud.StringField("body", "Content", crud.TextArea, "required,max=20000",
		func(m *models.Memo) *string { return &m.Body })
	body.HideInView = true

	return &crud.Resource[models.Memo]{
		Base:     Base,
		Singular: "Memo",
		Plural:   "Memos",
		Subtitle: "Internal circulars to staff, clergy and societies",
		Store:    set.Memos,
		Fields: []crud.Field[models.Memo]{
			crud.StringField("subject", "Subject", crud.Text, "required,max=200",
				func(m *models.Memo) *string { return &m.Subject }),
			crud.SelectField("to", "Recipients", "required", Recipients,
				func(m *models.Memo) *string { return &m.To }),
			crud.SelectField("priority", "Priority", "required", priorities,
				func(m *models.Memo) *string { return &m.Priority }),
			body,
		},
		Columns: []crud.Column[models.Memo]{
			{Label: "Subject", Value: title, Primary: true},
			{Label: "To", Value: func(m *models.Memo) string { return m.To }},
			{Label: "Date", Value: func(m *models.Memo) string { return shared.Date(m.Date) }},
			{Label: "Priority", Value: func(m *models.Memo) string { return m.Priority }, Badge: true},
			{Label: "Status", Value: func(m *models.Memo) string { return m.Status }, Badge: true},
		},
		Title: title,
		Prepare: func(_ context.Context, m *models.Memo, _ bool) error {
			m.Body = htmlsanitize.Sanitize(m.Body)
			return nil
		},
		OnChange: shared.Activity(set, logger, "memo", "Memo", title),
	}
}
