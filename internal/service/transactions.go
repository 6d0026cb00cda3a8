package service

import (
	"context"
	"time"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/ledger"
	"github.com/and161185/budget-keeper/internal/model"
)

// TransactionAPI is the part of the REST client used by TransactionService.
type TransactionAPI interface {
	Transactions(ctx context.Context, f model.TransactionFilter, skip, limit int) ([]model.Transaction, error)
	Transaction(ctx context.Context, id int64) (*model.Transaction, error)
	CreateTransaction(ctx context.Context, in model.TransactionCreate) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, in model.TransactionUpdate) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	Summary(ctx context.Context, f model.SummaryFilter) (*model.AggregationSummary, error)
}

// TransactionPage is one page of the transaction list.
type TransactionPage struct {
	Index   int                                    `json:"page"`
	HasMore bool                                   `json:"has_more"`
	Items   []model.Transaction                    `json:"items"`
	Months  []ledger.MonthGroup[model.Transaction] `json:"months"`
}

// TransactionService lists and edits transactions.
type TransactionService interface {
	// Page fetches one page using the pager's window plus one look-ahead row.
	Page(ctx context.Context, f model.TransactionFilter, p *ledger.Pager) (*TransactionPage, error)
	Get(ctx context.Context, id int64) (*model.Transaction, error)
	Create(ctx context.Context, in model.TransactionCreate) (*model.Transaction, error)
	Update(ctx context.Context, id int64, in model.TransactionUpdate) (*model.Transaction, error)
	Delete(ctx context.Context, id int64) error
	// Summary returns backend aggregates for f.
	Summary(ctx context.Context, f model.SummaryFilter) (*model.AggregationSummary, error)
}

type TransactionServiceImpl struct {
	api   TransactionAPI
	users UserSource
	now   func() time.Time
}

// NewTransactionService constructs TransactionService.
func NewTransactionService(api TransactionAPI, users UserSource) *TransactionServiceImpl {
	return &TransactionServiceImpl{api: api, users: users, now: time.Now}
}

func (s *TransactionServiceImpl) Page(ctx context.Context, f model.TransactionFilter, p *ledger.Pager) (*TransactionPage, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, errs.Validationf("unknown transaction type %q", f.Type)
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return nil, errs.Validationf("end date before start date")
	}
	fetched, err := s.api.Transactions(ctx, f, p.Skip(), p.Limit())
	if err != nil {
		return nil, err
	}
	items, more := ledger.Paginate(fetched, p.Size)
	return &TransactionPage{
		Index:   p.Index,
		HasMore: more,
		Items:   items,
		Months:  ledger.GroupByMonth(items, ledger.TransactionDates, s.now()),
	}, nil
}

func (s *TransactionServiceImpl) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := positiveID("transaction id", id); err != nil {
		return nil, err
	}
	return s.api.Transaction(ctx, id)
}

func (s *TransactionServiceImpl) Create(ctx context.Context, in model.TransactionCreate) (*model.Transaction, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	if in.TransactionDate.IsZero() {
		in.TransactionDate = model.NewTimestamp(s.now())
	}
	uid, err := creator(s.users, in.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	in.CreatedByUserID = uid
	return s.api.CreateTransaction(ctx, in)
}

func (s *TransactionServiceImpl) Update(ctx context.Context, id int64, in model.TransactionUpdate) (*model.Transaction, error) {
	if err := positiveID("transaction id", id); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	return s.api.UpdateTransaction(ctx, id, in)
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := positiveID("transaction id", id); err != nil {
		return err
	}
	return s.api.DeleteTransaction(ctx, id)
}

func (s *TransactionServiceImpl) Summary(ctx context.Context, f model.SummaryFilter) (*model.AggregationSummary, error) {
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return nil, errs.Validationf("end date before start date")
	}
	if f.TransactionType != "" && !f.TransactionType.Valid() {
		return nil, errs.Validationf("unknown transaction type %q", f.TransactionType)
	}
	return s.api.Summary(ctx, f)
}
