package ledger

// Paginate trims the look-ahead row of a pageSize+1 fetch.
// hasMore is true only when the backend returned more than pageSize rows.
func Paginate[T any](fetched []T, pageSize int) (items []T, hasMore bool) {
	if pageSize <= 0 || len(fetched) <= pageSize {
		return fetched, false
	}
	return fetched[:pageSize], true
}

// Pager tracks a zero-based page index over a list view.
type Pager struct {
	Index int
	Size  int
}

// NewPager returns a pager at page 0. Non-positive sizes fall back to 20.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = 20
	}
	return &Pager{Size: size}
}

// Skip is the offset of the current page.
func (p *Pager) Skip() int { return p.Index * p.Size }

// Limit is the number of rows to request: one more than displayed.
func (p *Pager) Limit() int { return p.Size + 1 }

// Next advances one page.
func (p *Pager) Next() { p.Index++ }
