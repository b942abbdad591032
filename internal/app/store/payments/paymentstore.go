// internal/app/store/payments/paymentstore.go
package paymentstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/domain/models"
)

// Store adds payment-specific behavior to the payments collection.
type Store struct {
	c *memstore.Collection[models.Payment]
}

// New creates a payment store.
func New(c *memstore.Collection[models.Payment]) *Store {
	return &Store{c: c}
}

// NextReference returns the next free reference for year, e.g. PAY-2024-006.
// It is a preview; Create assigns the reference it actually stores.
func (s *Store) NextReference(ctx context.Context, year int) (string, error) {
	rows, err := s.c.List(ctx)
	if err != nil {
		return "", err
	}
	return nextReference(rows, year), nil
}

func nextReference(rows []models.Payment, year int) string {
	prefix := fmt.Sprintf("PAY-%d-", year)
	max := 0
	for _, p := range rows {
		if !strings.HasPrefix(p.Reference, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(p.Reference, prefix))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

// Create inserts a payment, assigning a reference when none was given and
// defaulting the status to pending. The reference is picked under the
// collection lock, so concurrent creates never share one.
func (s *Store) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.Reference = strings.TrimSpace(p.Reference)
	if p.Status == "" {
		p.Status = models.StatusPending
	}
	return s.c.InsertWith(ctx, p, func(existing []models.Payment, p *models.Payment) error {
		if p.Reference != "" {
			return nil
		}
		year := p.Date.Year()
		if p.Date.IsZero() {
			year = s.c.Now().Year()
		}
		p.Reference = nextReference(existing, year)
		return nil
	})
}

// Totals sums amounts per status.
func (s *Store) Totals(ctx context.Context) (map[string]float64, error) {
	rows, err := s.c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, p := range rows {
		out[p.Status] += p.Amount
	}
	return out, nil
}
