package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/model"
)

// CatalogAPI is the part of the REST client used by CatalogService.
type CatalogAPI interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, in model.CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, in model.CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	Beneficiaries(ctx context.Context) ([]model.Beneficiary, error)
	CreateBeneficiary(ctx context.Context, in model.BeneficiaryInput) (*model.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, id int64, in model.BeneficiaryInput) (*model.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, id int64) error

	Users(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, in model.UserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, in model.UserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// CatalogService manages the reference data: categories, beneficiaries and users.
type CatalogService interface {
	Categories(ctx context.Context) ([]model.Category, error)
	SaveCategory(ctx context.Context, id int64, in model.CategoryInput) (*model.Category, error)
	// DeleteCategory returns an error matching errs.ErrInUse when transactions reference it.
	DeleteCategory(ctx context.Context, id int64) error

	Beneficiaries(ctx context.Context) ([]model.Beneficiary, error)
	SaveBeneficiary(ctx context.Context, id int64, in model.BeneficiaryInput) (*model.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, id int64) error

	Users(ctx context.Context) ([]model.User, error)
	SaveUser(ctx context.Context, id int64, in model.UserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type CatalogServiceImpl struct{ api CatalogAPI }

// NewCatalogService constructs CatalogService.
func NewCatalogService(api CatalogAPI) *CatalogServiceImpl { return &CatalogServiceImpl{api: api} }

func (s *CatalogServiceImpl) Categories(ctx context.Context) ([]model.Category, error) {
	return s.api.Categories(ctx)
}

// SaveCategory creates when id is 0 and updates otherwise.
func (s *CatalogServiceImpl) SaveCategory(ctx context.Context, id int64, in model.CategoryInput) (*model.Category, error) {
	if in.Type == "" {
		in.Type = model.CategoryExpense
	}
	if err := check(in); err != nil {
		return nil, err
	}
	if id == 0 {
		return s.api.CreateCategory(ctx, in)
	}
	return s.api.UpdateCategory(ctx, id, in)
}

func (s *CatalogServiceImpl) DeleteCategory(ctx context.Context, id int64) error {
	if err := positiveID("category id", id); err != nil {
		return err
	}
	err := s.api.DeleteCategory(ctx, id)
	if errors.Is(err, errs.ErrInUse) {
		return fmt.Errorf("category %d: %w", id, err)
	}
	return err
}

func (s *CatalogServiceImpl) Beneficiaries(ctx context.Context) ([]model.Beneficiary, error) {
	return s.api.Beneficiaries(ctx)
}

// SaveBeneficiary creates when id is 0 and updates otherwise.
func (s *CatalogServiceImpl) SaveBeneficiary(ctx context.Context, id int64, in model.BeneficiaryInput) (*model.Beneficiary, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	if id == 0 {
		return s.api.CreateBeneficiary(ctx, in)
	}
	return s.api.UpdateBeneficiary(ctx, id, in)
}

func (s *CatalogServiceImpl) DeleteBeneficiary(ctx context.Context, id int64) error {
	if err := positiveID("beneficiary id", id); err != nil {
		return err
	}
	return s.api.DeleteBeneficiary(ctx, id)
}

func (s *CatalogServiceImpl) Users(ctx context.Context) ([]model.User, error) {
	return s.api.Users(ctx)
}

// SaveUser creates when id is 0 and updates otherwise.
func (s *CatalogServiceImpl) SaveUser(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	if id == 0 {
		return s.api.CreateUser(ctx, in)
	}
	return s.api.UpdateUser(ctx, id, in)
}

func (s *CatalogServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	if err := positiveID("user id", id); err != nil {
		return err
	}
	return s.api.DeleteUser(ctx, id)
}
