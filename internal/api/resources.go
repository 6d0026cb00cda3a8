package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/and161185/budget-keeper/internal/model"
)

func itemPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10)
}

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	return listJSON[model.Category](ctx, c, "/categories", nil)
}

// Category fetches one category.
func (c *Client) Category(ctx context.Context, id int64) (*model.Category, error) {
	return getJSON[model.Category](ctx, c, itemPath("/categories", id), nil)
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, in model.CategoryInput) (*model.Category, error) {
	return sendJSON[model.Category](ctx, c, http.MethodPost, "/categories", in)
}

// UpdateCategory renames or retypes a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, in model.CategoryInput) (*model.Category, error) {
	return sendJSON[model.Category](ctx, c, http.MethodPut, itemPath("/categories", id), in)
}

// DeleteCategory removes a category; errs.ErrInUse when transactions still reference it.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, itemPath("/categories", id))
}

// Beneficiaries lists all beneficiaries.
func (c *Client) Beneficiaries(ctx context.Context) ([]model.Beneficiary, error) {
	return listJSON[model.Beneficiary](ctx, c, "/beneficiaries", nil)
}

// Beneficiary fetches one beneficiary.
func (c *Client) Beneficiary(ctx context.Context, id int64) (*model.Beneficiary, error) {
	return getJSON[model.Beneficiary](ctx, c, itemPath("/beneficiaries", id), nil)
}

// CreateBeneficiary adds a beneficiary.
func (c *Client) CreateBeneficiary(ctx context.Context, in model.BeneficiaryInput) (*model.Beneficiary, error) {
	return sendJSON[model.Beneficiary](ctx, c, http.MethodPost, "/beneficiaries", in)
}

// UpdateBeneficiary renames a beneficiary.
func (c *Client) UpdateBeneficiary(ctx context.Context, id int64, in model.BeneficiaryInput) (*model.Beneficiary, error) {
	return sendJSON[model.Beneficiary](ctx, c, http.MethodPut, itemPath("/beneficiaries", id), in)
}

// DeleteBeneficiary removes a beneficiary.
func (c *Client) DeleteBeneficiary(ctx context.Context, id int64) error {
	return c.delete(ctx, itemPath("/beneficiaries", id))
}

// Users lists household members.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	return listJSON[model.User](ctx, c, "/users", nil)
}

// User fetches one user.
func (c *Client) User(ctx context.Context, id int64) (*model.User, error) {
	return getJSON[model.User](ctx, c, itemPath("/users", id), nil)
}

// CreateUser adds a household member.
func (c *Client) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	return sendJSON[model.User](ctx, c, http.MethodPost, "/users", in)
}

// UpdateUser renames a household member.
func (c *Client) UpdateUser(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	return sendJSON[model.User](ctx, c, http.MethodPut, itemPath("/users", id), in)
}

// DeleteUser removes a household member.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, itemPath("/users", id))
}
