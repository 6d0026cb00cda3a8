package ledger

import (
	"slices"
	"time"

	"github.com/and161185/budget-keeper/internal/model"
)

const (
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "January 2006"
)

// MonthGroup is a calendar month bucket of items.
type MonthGroup[T any] struct {
	MonthKey string `json:"month_key"` // YYYY-MM
	Label    string `json:"label"`     // e.g. "January 2024"
	Items    []T    `json:"items"`
}

// DateSelector returns the display date of an item and its creation time.
// A zero time means the value is absent.
type DateSelector[T any] func(T) (date, created time.Time)

// GroupByMonth buckets items by the month of their date, falling back to the
// creation time and then to now. Groups are ordered most recent month first;
// items keep their input order within a group.
//
// The fallback to now files undated items under the month the code runs in.
// It is kept for compatibility with the web client, not because it is correct.
func GroupByMonth[T any](items []T, sel DateSelector[T], now time.Time) []MonthGroup[T] {
	groups := []MonthGroup[T]{}
	index := map[string]int{}
	for _, it := range items {
		date, created := sel(it)
		t := date
		if t.IsZero() {
			t = created
		}
		if t.IsZero() {
			t = now
		}
		key := t.Format(monthKeyLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
			groups = append(groups, MonthGroup[T]{MonthKey: key, Label: first.Format(monthLabelLayout)})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	slices.SortFunc(groups, func(a, b MonthGroup[T]) int { return compareDesc(a.MonthKey, b.MonthKey) })
	return groups
}

// EntryDates selects the gift date of an entry.
func EntryDates(e model.GiftEntry) (time.Time, time.Time) { return e.GiftDate.Time, e.CreatedAt.Time }

// PurchaseDates selects the purchase date of a purchase.
func PurchaseDates(p model.GiftPurchase) (time.Time, time.Time) {
	return p.PurchaseDate.Time, p.CreatedAt.Time
}

// TransactionDates selects the booking date of a transaction.
func TransactionDates(t model.Transaction) (time.Time, time.Time) {
	return t.TransactionDate.Time, t.CreatedAt.Time
}
