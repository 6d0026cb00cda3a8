package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/model"
)

// GiftAPI is the part of the REST client used by GiftService.
type GiftAPI interface {
	Occasions(ctx context.Context, skip, limit int) ([]model.OccasionWithSummary, error)
	Occasion(ctx context.Context, id int64) (*model.OccasionWithEntries, error)
	OccasionSummary(ctx context.Context, id int64) (*model.GiftOccasionSummary, error)
	CreateOccasion(ctx context.Context, in model.OccasionCreate) (*model.Occasion, error)
	UpdateOccasion(ctx context.Context, id int64, in model.OccasionUpdate) (*model.Occasion, error)
	DeleteOccasion(ctx context.Context, id int64) error

	Entries(ctx context.Context, occasionID int64) ([]model.GiftEntry, error)
	CreateEntry(ctx context.Context, occasionID int64, in model.GiftEntryCreate) (*model.GiftEntry, error)
	UpdateEntry(ctx context.Context, id int64, in model.GiftEntryUpdate) (*model.GiftEntry, error)
	DeleteEntry(ctx context.Context, id int64) error

	Purchases(ctx context.Context, occasionID int64) ([]model.GiftPurchase, error)
	CreatePurchase(ctx context.Context, occasionID int64, in model.GiftPurchaseCreate) (*model.GiftPurchase, error)
	UpdatePurchase(ctx context.Context, id int64, in model.GiftPurchaseUpdate) (*model.GiftPurchase, error)
	DeletePurchase(ctx context.Context, id int64) error
}

// GiftService manages gift occasions and their money flows.
type GiftService interface {
	// ListOccasions returns occasions with server-side summaries.
	ListOccasions(ctx context.Context, skip, limit int) ([]model.OccasionWithSummary, error)
	// LoadOccasion fetches the occasion detail with its entries and purchases.
	// Lists missing from the detail response are fetched concurrently.
	LoadOccasion(ctx context.Context, id int64) (*OccasionView, error)
	// ServerSummary returns the backend's own totals for the occasion.
	ServerSummary(ctx context.Context, id int64) (*model.GiftOccasionSummary, error)
	CreateOccasion(ctx context.Context, in model.OccasionCreate) (*model.Occasion, error)
	UpdateOccasion(ctx context.Context, id int64, in model.OccasionUpdate) (*model.Occasion, error)
	DeleteOccasion(ctx context.Context, id int64) error

	AddEntry(ctx context.Context, v *OccasionView, in model.GiftEntryCreate) (*model.GiftEntry, error)
	UpdateEntry(ctx context.Context, v *OccasionView, id int64, in model.GiftEntryUpdate) (*model.GiftEntry, error)
	DeleteEntry(ctx context.Context, v *OccasionView, id int64) error

	AddPurchase(ctx context.Context, v *OccasionView, in model.GiftPurchaseCreate) (*model.GiftPurchase, error)
	UpdatePurchase(ctx context.Context, v *OccasionView, id int64, in model.GiftPurchaseUpdate) (*model.GiftPurchase, error)
	DeletePurchase(ctx context.Context, v *OccasionView, id int64) error
}

type GiftServiceImpl struct {
	api   GiftAPI
	users UserSource
}

// NewGiftService constructs GiftService.
func NewGiftService(api GiftAPI, users UserSource) *GiftServiceImpl {
	return &GiftServiceImpl{api: api, users: users}
}

func (s *GiftServiceImpl) ListOccasions(ctx context.Context, skip, limit int) ([]model.OccasionWithSummary, error) {
	if skip < 0 || limit <= 0 {
		return nil, errs.Validationf("invalid window skip=%d limit=%d", skip, limit)
	}
	return s.api.Occasions(ctx, skip, limit)
}

func (s *GiftServiceImpl) LoadOccasion(ctx context.Context, id int64) (*OccasionView, error) {
	if err := positiveID("occasion id", id); err != nil {
		return nil, err
	}
	occ, err := s.api.Occasion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load occasion %d: %w", id, err)
	}
	v := &OccasionView{Occasion: occ.Occasion, Entries: occ.GiftEntries, Purchases: occ.GiftPurchases}
	if v.Entries == nil || v.Purchases == nil {
		if err := s.fillLists(ctx, v); err != nil {
			return nil, fmt.Errorf("load occasion %d: %w", id, err)
		}
	}
	if v.Entries == nil {
		v.Entries = []model.GiftEntry{}
	}
	if v.Purchases == nil {
		v.Purchases = []model.GiftPurchase{}
	}
	return v, nil
}

// fillLists fetches the lists the detail response left out.
func (s *GiftServiceImpl) fillLists(ctx context.Context, v *OccasionView) error {
	id := v.Occasion.ID
	g, gctx := errgroup.WithContext(ctx)
	if v.Entries == nil {
		g.Go(func() (err error) {
			v.Entries, err = s.api.Entries(gctx, id)
			return err
		})
	}
	if v.Purchases == nil {
		g.Go(func() (err error) {
			v.Purchases, err = s.api.Purchases(gctx, id)
			return err
		})
	}
	return g.Wait()
}

func (s *GiftServiceImpl) ServerSummary(ctx context.Context, id int64) (*model.GiftOccasionSummary, error) {
	if err := positiveID("occasion id", id); err != nil {
		return nil, err
	}
	return s.api.OccasionSummary(ctx, id)
}

func (s *GiftServiceImpl) CreateOccasion(ctx context.Context, in model.OccasionCreate) (*model.Occasion, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return nil, err
	}
	uid, err := creator(s.users, in.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	in.CreatedByUserID = uid
	return s.api.CreateOccasion(ctx, in)
}

func (s *GiftServiceImpl) UpdateOccasion(ctx context.Context, id int64, in model.OccasionUpdate) (*model.Occasion, error) {
	if err := positiveID("occasion id", id); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	return s.api.UpdateOccasion(ctx, id, in)
}

func (s *GiftServiceImpl) DeleteOccasion(ctx context.Context, id int64) error {
	if err := positiveID("occasion id", id); err != nil {
		return err
	}
	return s.api.DeleteOccasion(ctx, id)
}

// AddEntry validates and records an entry, then appends it to v.
func (s *GiftServiceImpl) AddEntry(ctx context.Context, v *OccasionView, in model.GiftEntryCreate) (*model.GiftEntry, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	uid, err := creator(s.users, in.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	in.CreatedByUserID = uid
	e, err := s.api.CreateEntry(ctx, v.Occasion.ID, in)
	if err != nil {
		return nil, err
	}
	v.Entries = append(v.Entries, *e)
	return e, nil
}

// UpdateEntry validates and applies a partial update, then replaces the entry in v.
func (s *GiftServiceImpl) UpdateEntry(ctx context.Context, v *OccasionView, id int64, in model.GiftEntryUpdate) (*model.GiftEntry, error) {
	if err := positiveID("entry id", id); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	e, err := s.api.UpdateEntry(ctx, id, in)
	if err != nil {
		return nil, err
	}
	v.Entries = replaceByID(v.Entries, id, entryID, *e)
	return e, nil
}

// DeleteEntry deletes the entry and removes it from v.
func (s *GiftServiceImpl) DeleteEntry(ctx context.Context, v *OccasionView, id int64) error {
	if err := positiveID("entry id", id); err != nil {
		return err
	}
	if err := s.api.DeleteEntry(ctx, id); err != nil {
		return err
	}
	v.Entries = removeByID(v.Entries, id, entryID)
	return nil
}

// AddPurchase validates and records a purchase, then appends it to v.
func (s *GiftServiceImpl) AddPurchase(ctx context.Context, v *OccasionView, in model.GiftPurchaseCreate) (*model.GiftPurchase, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	uid, err := creator(s.users, in.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	in.CreatedByUserID = uid
	p, err := s.api.CreatePurchase(ctx, v.Occasion.ID, in)
	if err != nil {
		return nil, err
	}
	v.Purchases = append(v.Purchases, *p)
	return p, nil
}

// UpdatePurchase validates and applies a partial update, then replaces the purchase in v.
func (s *GiftServiceImpl) UpdatePurchase(ctx context.Context, v *OccasionView, id int64, in model.GiftPurchaseUpdate) (*model.GiftPurchase, error) {
	if err := positiveID("purchase id", id); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	p, err := s.api.UpdatePurchase(ctx, id, in)
	if err != nil {
		return nil, err
	}
	v.Purchases = replaceByID(v.Purchases, id, purchaseID, *p)
	return p, nil
}

// DeletePurchase deletes the purchase and removes it from v.
func (s *GiftServiceImpl) DeletePurchase(ctx context.Context, v *OccasionView, id int64) error {
	if err := positiveID("purchase id", id); err != nil {
		return err
	}
	if err := s.api.DeletePurchase(ctx, id); err != nil {
		return err
	}
	v.Purchases = removeByID(v.Purchases, id, purchaseID)
	return nil
}
