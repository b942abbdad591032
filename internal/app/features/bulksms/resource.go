// internal/app/features/bulksms/resource.go
package bulksms

import (
	"context"
	"strings"
	"unicode"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/app/system/htmlsanitize"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const (
	Base          = "/administration/bulk-sms"
	TemplatesBase = Base + "/templates"
)

// Groups are the recipient lists a message can be sent to.
var Groups = []string{"All Members", "Clergy Only", "Men's Fellowship", "Women's Fellowship", "Youth Fellowship"}

// SegmentLength is the character count of one SMS.
const SegmentLength = 160

// Segments is the number of SMS parts a message is split into.
func Segments(msg string) int {
	n := len([]rune(msg))
	if n == 0 {
		return 0
	}
	return (n + SegmentLength - 1) / SegmentLength
}

// Slugify turns a template name into its URL key.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(text.Fold(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// TemplateResource is the generic CRUD for reusable message bodies. New
// templates get a slug from their name, suffixed when it is taken.
func TemplateResource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.SMSTemplate] {
	title := func(t *models.SMSTemplate) string { return t.Name }
	return &crud.Resource[models.SMSTemplate]{
		Base:     TemplatesBase,
		Home:     Base,
		Singular: "Template",
		Plural:   "Templates",
		Store:    set.SMSTemplates,
		Fields: []crud.Field[models.SMSTemplate]{
			crud.StringField("name", "Template Name", crud.Text, "required,max=100",
				func(t *models.SMSTemplate) *string { return &t.Name }),
			crud.StringField("content", "Content", crud.TextArea, "required,max=918",
				func(t *models.SMSTemplate) *string { return &t.Content }),
		},
		Columns: []crud.Column[models.SMSTemplate]{
			{Label: "Name", Value: title, Primary: true},
			{Label: "Content", Value: func(t *models.SMSTemplate) string { return t.Content }},
		},
		Title: title,
		Prepare: func(ctx context.Context, t *models.SMSTemplate, isNew bool) error {
			t.Content = htmlsanitize.StripTags(t.Content)
			if !isNew && t.Slug != "" {
				return nil
			}
			slug := Slugify(t.Name)
			taken, err := set.SMSTemplates.Find(ctx, func(o models.SMSTemplate) bool { return o.Slug == slug })
			if err != nil {
				return err
			}
			if slug == "" || len(taken) > 0 {
				slug = strings.Trim(slug+"-"+uuid.NewString()[:8], "-")
			}
			t.Slug = slug
			return nil
		},
		OnChange: shared.Activity(set, logger, "sms", "SMS template", title),
	}
}
