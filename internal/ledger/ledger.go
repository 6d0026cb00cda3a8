// Package ledger derives gift-occasion totals and display groupings from
// already fetched entries and purchases. It performs no I/O and never
// mutates its inputs.
package ledger

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/model"
)

// Summarize computes the occasion totals in one pass over each collection.
// Balance is received minus purchases; money given is reported but does not offset it.
func Summarize(entries []model.GiftEntry, purchases []model.GiftPurchase) model.GiftOccasionSummary {
	s := model.GiftOccasionSummary{
		TotalReceived:  decimal.Zero,
		TotalGiven:     decimal.Zero,
		TotalPurchases: decimal.Zero,
		EntryCount:     len(entries),
		PurchaseCount:  len(purchases),
	}
	for _, e := range entries {
		switch e.Direction {
		case model.Received:
			s.TotalReceived = s.TotalReceived.Add(e.Amount)
		case model.Given:
			s.TotalGiven = s.TotalGiven.Add(e.Amount)
		}
	}
	for _, p := range purchases {
		s.TotalPurchases = s.TotalPurchases.Add(p.Amount)
	}
	s.Balance = s.TotalReceived.Sub(s.TotalPurchases)
	return s
}

// Split holds entries partitioned by direction, most recent first.
type Split struct {
	Received []model.GiftEntry `json:"received"`
	Given    []model.GiftEntry `json:"given"`
}

// SplitByDirection partitions entries and sorts each side by gift date descending.
// Entries sharing a date keep their input order.
func SplitByDirection(entries []model.GiftEntry) Split {
	out := Split{Received: []model.GiftEntry{}, Given: []model.GiftEntry{}}
	for _, e := range entries {
		switch e.Direction {
		case model.Received:
			out.Received = append(out.Received, e)
		case model.Given:
			out.Given = append(out.Given, e)
		}
	}
	byDateDesc := func(a, b model.GiftEntry) int { return b.GiftDate.Compare(a.GiftDate.Time) }
	slices.SortStableFunc(out.Received, byDateDesc)
	slices.SortStableFunc(out.Given, byDateDesc)
	return out
}

// SortPurchases returns a copy of purchases ordered by purchase date descending (stable).
func SortPurchases(purchases []model.GiftPurchase) []model.GiftPurchase {
	out := slices.Clone(purchases)
	if out == nil {
		out = []model.GiftPurchase{}
	}
	slices.SortStableFunc(out, func(a, b model.GiftPurchase) int {
		return b.PurchaseDate.Compare(a.PurchaseDate.Time)
	})
	return out
}

// ValidateAmount enforces the amount > 0 gate applied before any submission.
// Non-positive amounts are rejected, never clamped.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.ErrInvalidAmount
	}
	return nil
}

func compareDesc[T cmp.Ordered](a, b T) int { return cmp.Compare(b, a) }
