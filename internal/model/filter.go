package model

import (
	"net/url"
	"strconv"
	"time"
)

// SummaryFilter enumerates every filter accepted by GET /aggregations/summary.
// Zero values are omitted from the query.
type SummaryFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	TransactionType TransactionType
	CategoryID      *int64
	BeneficiaryID   *int64
}

// Values encodes the filter as query parameters.
func (f SummaryFilter) Values() url.Values {
	v := url.Values{}
	if f.StartDate != nil {
		v.Set("start_date", f.StartDate.UTC().Format(time.RFC3339))
	}
	if f.EndDate != nil {
		v.Set("end_date", f.EndDate.UTC().Format(time.RFC3339))
	}
	if f.TransactionType != "" {
		v.Set("transaction_type", string(f.TransactionType))
	}
	if f.CategoryID != nil {
		v.Set("category_id", strconv.FormatInt(*f.CategoryID, 10))
	}
	if f.BeneficiaryID != nil {
		v.Set("beneficiary_id", strconv.FormatInt(*f.BeneficiaryID, 10))
	}
	return v
}

// LastMonths returns a filter covering the months before now (report shortcuts).
func LastMonths(now time.Time, months int) SummaryFilter {
	start := now.AddDate(0, -months, 0)
	end := now
	return SummaryFilter{StartDate: &start, EndDate: &end}
}

// TransactionFilter enumerates the list filters of GET /transactions.
type TransactionFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Type            TransactionType
	CategoryID      *int64
	BeneficiaryID   *int64
	CreatedByUserID *int64
}

// Values encodes the filter plus the skip/limit window.
func (f TransactionFilter) Values(skip, limit int) url.Values {
	v := url.Values{}
	v.Set("skip", strconv.Itoa(skip))
	v.Set("limit", strconv.Itoa(limit))
	if f.StartDate != nil {
		v.Set("start_date", f.StartDate.UTC().Format(time.RFC3339))
	}
	if f.EndDate != nil {
		v.Set("end_date", f.EndDate.UTC().Format(time.RFC3339))
	}
	if f.Type != "" {
		v.Set("transaction_type", string(f.Type))
	}
	if f.CategoryID != nil {
		v.Set("category_id", strconv.FormatInt(*f.CategoryID, 10))
	}
	if f.BeneficiaryID != nil {
		v.Set("beneficiary_id", strconv.FormatInt(*f.BeneficiaryID, 10))
	}
	if f.CreatedByUserID != nil {
		v.Set("created_by_user_id", strconv.FormatInt(*f.CreatedByUserID, 10))
	}
	return v
}
