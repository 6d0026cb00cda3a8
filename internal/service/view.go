package service

import (
	"slices"

	"github.com/and161185/budget-keeper/internal/ledger"
	"github.com/and161185/budget-keeper/internal/model"
)

// OccasionView is the client-side state of one occasion's detail page.
// Mutations patch the lists in place instead of re-fetching them.
type OccasionView struct {
	Occasion  model.Occasion
	Entries   []model.GiftEntry
	Purchases []model.GiftPurchase
}

// Summary recomputes the totals from the current lists.
func (v *OccasionView) Summary() model.GiftOccasionSummary {
	s := ledger.Summarize(v.Entries, v.Purchases)
	s.OccasionID = v.Occasion.ID
	return s
}

// Split returns the entries by direction, most recent first.
func (v *OccasionView) Split() ledger.Split { return ledger.SplitByDirection(v.Entries) }

// SortedPurchases returns the purchases, most recent first.
func (v *OccasionView) SortedPurchases() []model.GiftPurchase { return ledger.SortPurchases(v.Purchases) }

func replaceByID[T any](items []T, id int64, idOf func(T) int64, repl T) []T {
	if i := slices.IndexFunc(items, func(it T) bool { return idOf(it) == id }); i >= 0 {
		items[i] = repl
	}
	return items
}

func removeByID[T any](items []T, id int64, idOf func(T) int64) []T {
	return slices.DeleteFunc(items, func(it T) bool { return idOf(it) == id })
}

func entryID(e model.GiftEntry) int64       { return e.ID }
func purchaseID(p model.GiftPurchase) int64 { return p.ID }
