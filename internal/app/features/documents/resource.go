// internal/app/features/documents/resource.go
package documents

import (
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const Base = "/administration/documents"

// Categories group the library. The sidebar of the documents page lists
// them with a count each.
var Categories = []string{"Legal", "Finance", "HR", "Branding", "Operations", "Media"}

// FileTypes can be picked when no file is attached.
var FileTypes = []string{"PDF", "Word", "Excel", "PowerPoint", "Image", "ZIP"}

// Resource backs the edit and delete modals; uploads have their own
// multipart form.
func Resource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.Document] {
	title := func(d *models.Document) string { return d.Name }
	return &crud.Resource[models.Document]{
		Base:     Base,
		Singular: "Document",
		Plural:   "Documents",
		Subtitle: "Policies, templates and media shared across the church",
		Store:    set.Documents,
		Fields: []crud.Field[models.Document]{
			crud.StringField("name", "Document name", crud.Text, "required,max=200",
				func(d *models.Document) *string { return &d.Name }),
			crud.SelectField("category", "Category", "required", Categories,
				func(d *models.Document) *string { return &d.Category }),
			crud.StringField("description", "Description", crud.TextArea, "max=1000",
				func(d *models.Document) *string { return &d.Description }),
		},
		Columns: []crud.Column[models.Document]{
			{Label: "Name", Value: title, Primary: true},
			{Label: "Category", Value: func(d *models.Document) string { return d.Category }},
			{Label: "Type", Value: func(d *models.Document) string { return d.FileType }},
			{Label: "Size", Value: func(d *models.Document) string { return d.Size }},
			{Label: "Uploaded", Value: func(d *models.Document) string { return shared.Date(d.Date) }},
		},
		Title:    title,
		OnChange: shared.Activity(set, logger, "document", "Document", title),
	}
}
