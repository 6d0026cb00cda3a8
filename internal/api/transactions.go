package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/and161185/budget-keeper/internal/model"
)

func transactionPath(id int64) string { return "/transactions/" + strconv.FormatInt(id, 10) }

// Transactions lists transactions matching f within the skip/limit window.
func (c *Client) Transactions(ctx context.Context, f model.TransactionFilter, skip, limit int) ([]model.Transaction, error) {
	return listJSON[model.Transaction](ctx, c, "/transactions", f.Values(skip, limit))
}

// Transaction fetches one transaction.
func (c *Client) Transaction(ctx context.Context, id int64) (*model.Transaction, error) {
	return getJSON[model.Transaction](ctx, c, transactionPath(id), nil)
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, in model.TransactionCreate) (*model.Transaction, error) {
	return sendJSON[model.Transaction](ctx, c, http.MethodPost, "/transactions", in)
}

// UpdateTransaction applies a partial update.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, in model.TransactionUpdate) (*model.Transaction, error) {
	return sendJSON[model.Transaction](ctx, c, http.MethodPut, transactionPath(id), in)
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.delete(ctx, transactionPath(id))
}

// Summary returns the aggregated totals for f.
func (c *Client) Summary(ctx context.Context, f model.SummaryFilter) (*model.AggregationSummary, error) {
	return getJSON[model.AggregationSummary](ctx, c, "/aggregations/summary", f.Values())
}
