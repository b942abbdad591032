// internal/app/features/finance/collections.go
package finance

import (
	"slices"
	"time"

	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/app/system/charts"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const CollectionsBase = "/finance/collections"

// CollectionTypes are the kinds of offering the church records.
var CollectionTypes = []string{
	"25% Remittance", "Faith Seed Initiative", "Love Feast",
	"Founder's Day", "General Donation", "Special Offering",
}

var paymentStatuses = []string{models.StatusCompleted, models.StatusPending, models.StatusFailed}

func CollectionResource(set *collections.Set, logger *zap.Logger) *crud.Resource[models.Collection] {
	title := func(c *models.Collection) string { return c.Type + " - " + c.Source }
	return &crud.Resource[models.Collection]{
		Base:     CollectionsBase,
		Singular: "Collection",
		Plural:   "Collections",
		Subtitle: "Remittances, offerings and special collections",
		Store:    set.Collections,
		Fields: []crud.Field[models.Collection]{
			crud.SelectField("type", "Collection type", "required", CollectionTypes,
				func(c *models.Collection) *string { return &c.Type }),
			crud.StringField("source", "Source", crud.Text, "required,max=200",
				func(c *models.Collection) *string { return &c.Source }),
			crud.MoneyField("amount", "Amount", "required",
				func(c *models.Collection) *float64 { return &c.Amount }),
			crud.DateField("date", "Date", "required",
				func(c *models.Collection) *time.Time { return &c.Date }),
			crud.SelectField("status", "Status", "required", paymentStatuses,
				func(c *models.Collection) *string { return &c.Status }),
		},
		Columns: []crud.Column[models.Collection]{
			{Label: "Type", Value: func(c *models.Collection) string { return c.Type }, Primary: true},
			{Label: "Source", Value: func(c *models.Collection) string { return c.Source }},
			{Label: "Amount", Value: func(c *models.Collection) string { return shared.Money(c.Amount) }},
			{Label: "Date", Value: func(c *models.Collection) string { return shared.Date(c.Date) }},
			{Label: "Status", Value: func(c *models.Collection) string { return c.Status }, Badge: true},
		},
		Title:   title,
		Prepare: positiveAmount(func(c *models.Collection) float64 { return c.Amount }),
		Stats: func(rows []models.Collection) []crud.Stat {
			var done, pending float64
			for _, c := range rows {
				switch c.Status {
				case models.StatusCompleted:
					done += c.Amount
				case models.StatusPending:
					pending += c.Amount
				}
			}
			return []crud.Stat{
				{Label: "Total Collected", Value: shared.Money(done), Tone: "ok"},
				{Label: "Pending", Value: shared.Money(pending), Tone: "warn"},
				{Label: "Records", Value: shared.Count(len(rows))},
			}
		},
		OnChange: shared.Activity(set, logger, "finance", "Collection", title),
	}
}

// ByType totals completed collections per type, in CollectionTypes order
// followed by any other types seen.
func ByType(rows []models.Collection) []charts.Point {
	sums := make(map[string]float64)
	var extra []string
	for _, c := range rows {
		if c.Status != models.StatusCompleted {
			continue
		}
		if _, seen := sums[c.Type]; !seen && !slices.Contains(CollectionTypes, c.Type) {
			extra = append(extra, c.Type)
		}
		sums[c.Type] += c.Amount
	}
	out := make([]charts.Point, 0, len(CollectionTypes)+len(extra))
	for _, t := range append(slices.Clone(CollectionTypes), extra...) {
		out = append(out, charts.Point{Label: t, Value: sums[t]})
	}
	return out
}
