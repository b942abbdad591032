// internal/app/features/finance/payments.go
package finance

import (
	"context"
	"errors"
	"time"

	"github.com/ohenegyan12/church-management/internal/app/features/shared"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	paymentstore "github.com/ohenegyan12/church-management/internal/app/store/payments"
	"github.com/ohenegyan12/church-management/internal/app/system/crud"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"go.uber.org/zap"
)

const PaymentsBase = "/finance/payments"

var paymentMethods = []string{"Mobile Money", "Bank Transfer", "Cash", "Cheque"}

func PaymentResource(set *collections.Set, payments *paymentstore.Store, logger *zap.Logger) *crud.Resource[models.Payment] {
	title := func(p *models.Payment) string { return p.Reference }

	ref := crud.StringField("reference", "Reference", crud.Text, "max=40",
		func(p *models.Payment) *string { return &p.Reference })
	ref.Placeholder = "Assigned automatically"

	amount := positiveAmount(func(p *models.Payment) float64 { return p.Amount })

	return &crud.Resource[models.Payment]{
		Base:     PaymentsBase,
		Singular: "Payment",
		Plural:   "Payments",
		Subtitle: "Payments received from societies and members",
		Store:    set.Payments,
		Fields: []crud.Field[models.Payment]{
			ref,
			crud.StringField("payer", "Payer", crud.Text, "required,max=200",
				func(p *models.Payment) *string { return &p.Payer }),
			crud.MoneyField("amount", "Amount", "required",
				func(p *models.Payment) *float64 { return &p.Amount }),
			crud.SelectField("method", "Payment method", "required", paymentMethods,
				func(p *models.Payment) *string { return &p.Method }),
			crud.DateField("date", "Payment date", "required",
				func(p *models.Payment) *time.Time { return &p.Date }),
			crud.SelectField("status", "Status", "required", paymentStatuses,
				func(p *models.Payment) *string { return &p.Status }),
			crud.StringField("notes", "Notes", crud.TextArea, "max=1000",
				func(p *models.Payment) *string { return &p.Notes }),
		},
		Columns: []crud.Column[models.Payment]{
			{Label: "Reference", Value: title, Primary: true},
			{Label: "Payer", Value: func(p *models.Payment) string { return p.Payer }},
			{Label: "Amount", Value: func(p *models.Payment) string { return shared.Money(p.Amount) }},
			{Label: "Method", Value: func(p *models.Payment) string { return p.Method }},
			{Label: "Date", Value: func(p *models.Payment) string { return shared.Date(p.Date) }},
			{Label: "Status", Value: func(p *models.Payment) string { return p.Status }, Badge: true},
		},
		Title:   title,
		Actions: []crud.Action{{Label: "Receipt", Path: "receipt"}},
		Prepare: amount,
		Insert:  payments.Create,
		Stats: func(rows []models.Payment) []crud.Stat {
			var done, pending, failed float64
			for _, p := range rows {
				switch p.Status {
				case models.StatusCompleted:
					done += p.Amount
				case models.StatusPending:
					pending += p.Amount
				case models.StatusFailed:
					failed += p.Amount
				}
			}
			return []crud.Stat{
				{Label: "Received", Value: shared.Money(done), Tone: "ok"},
				{Label: "Pending", Value: shared.Money(pending), Tone: "warn"},
				{Label: "Failed", Value: shared.Money(failed), Tone: "danger"},
			}
		},
		OnChange: shared.Activity(set, logger, "finance", "Payment", func(p *models.Payment) string {
			return p.Reference + " from " + p.Payer
		}),
	}
}

var errNonPositive = errors.New("Amount must be greater than 0.")

// positiveAmount rejects zero amounts; the field itself already refuses
// negatives.
func positiveAmount[T any](amount func(*T) float64) func(ctx context.Context, rec *T, isNew bool) error {
	return func(_ context.Context, rec *T, _ bool) error {
		if amount(rec) <= 0 {
			return errNonPositive
		}
		return nil
	}
}
