package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/and161185/budget-keeper/internal/model"
)

const occasionsPath = "/gift-occasions"

func occasionPath(id int64, sub string) string {
	return occasionsPath + "/" + strconv.FormatInt(id, 10) + sub
}

// Occasions lists occasions with their server-side summaries.
func (c *Client) Occasions(ctx context.Context, skip, limit int) ([]model.OccasionWithSummary, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return listJSON[model.OccasionWithSummary](ctx, c, occasionsPath, q)
}

// Occasion fetches an occasion with its entries and purchases.
func (c *Client) Occasion(ctx context.Context, id int64) (*model.OccasionWithEntries, error) {
	return getJSON[model.OccasionWithEntries](ctx, c, occasionPath(id, ""), nil)
}

// OccasionSummary fetches the server-computed summary of an occasion.
func (c *Client) OccasionSummary(ctx context.Context, id int64) (*model.GiftOccasionSummary, error) {
	return getJSON[model.GiftOccasionSummary](ctx, c, occasionPath(id, "/summary"), nil)
}

// CreateOccasion adds an occasion.
func (c *Client) CreateOccasion(ctx context.Context, in model.OccasionCreate) (*model.Occasion, error) {
	return sendJSON[model.Occasion](ctx, c, http.MethodPost, occasionsPath, in)
}

// UpdateOccasion applies a partial update.
func (c *Client) UpdateOccasion(ctx context.Context, id int64, in model.OccasionUpdate) (*model.Occasion, error) {
	return sendJSON[model.Occasion](ctx, c, http.MethodPut, occasionPath(id, ""), in)
}

// DeleteOccasion removes an occasion and, server-side, its entries and purchases.
func (c *Client) DeleteOccasion(ctx context.Context, id int64) error {
	return c.delete(ctx, occasionPath(id, ""))
}

// Entries lists the gift entries of an occasion.
func (c *Client) Entries(ctx context.Context, occasionID int64) ([]model.GiftEntry, error) {
	return listJSON[model.GiftEntry](ctx, c, occasionPath(occasionID, "/entries"), nil)
}

// CreateEntry records a gift entry for an occasion.
func (c *Client) CreateEntry(ctx context.Context, occasionID int64, in model.GiftEntryCreate) (*model.GiftEntry, error) {
	return sendJSON[model.GiftEntry](ctx, c, http.MethodPost, occasionPath(occasionID, "/entries"), in)
}

// UpdateEntry applies a partial update to an entry.
func (c *Client) UpdateEntry(ctx context.Context, id int64, in model.GiftEntryUpdate) (*model.GiftEntry, error) {
	return sendJSON[model.GiftEntry](ctx, c, http.MethodPut, itemPath(occasionsPath+"/entries", id), in)
}

// DeleteEntry removes an entry.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	return c.delete(ctx, itemPath(occasionsPath+"/entries", id))
}

// Purchases lists the gift purchases of an occasion.
func (c *Client) Purchases(ctx context.Context, occasionID int64) ([]model.GiftPurchase, error) {
	return listJSON[model.GiftPurchase](ctx, c, occasionPath(occasionID, "/purchases"), nil)
}

// CreatePurchase records a purchase for an occasion.
func (c *Client) CreatePurchase(ctx context.Context, occasionID int64, in model.GiftPurchaseCreate) (*model.GiftPurchase, error) {
	return sendJSON[model.GiftPurchase](ctx, c, http.MethodPost, occasionPath(occasionID, "/purchases"), in)
}

// UpdatePurchase applies a partial update to a purchase.
func (c *Client) UpdatePurchase(ctx context.Context, id int64, in model.GiftPurchaseUpdate) (*model.GiftPurchase, error) {
	return sendJSON[model.GiftPurchase](ctx, c, http.MethodPut, itemPath(occasionsPath+"/purchases", id), in)
}

// DeletePurchase removes a purchase.
func (c *Client) DeletePurchase(ctx context.Context, id int64) error {
	return c.delete(ctx, itemPath(occasionsPath+"/purchases", id))
}
