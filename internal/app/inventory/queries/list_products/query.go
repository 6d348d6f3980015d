package list_products

import (
	"context"
	"iter"
	"strings"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/rowfilter"
)

// SortKey selects the ordering of the listing.
type SortKey string

const (
	SortNone         SortKey = ""
	SortProductNo    SortKey = "product_no"
	SortPurchaseDate SortKey = "purchase_date"
	SortSalePrice    SortKey = "sale_price"
)

// Request contains the optional filter predicate and sort key.
// Zero values mean "no constraint"; archived records are excluded unless
// IncludeArchived is set.
type Request struct {
	Status          domain.SaleStatus
	StoreName       string
	SalesChannel    string
	IncludeArchived bool
	PurchasedFrom   domain.Date
	PurchasedTo     domain.Date
	SoldFrom        domain.Date
	SoldTo          domain.Date
	SortBy          SortKey
	SortDir         rowfilter.Direction
}

// Query handles the list records query use case.
type Query struct {
	rows contracts.RowStore
}

// NewQuery creates a new list records query.
func NewQuery(rows contracts.RowStore) *Query {
	return &Query{rows: rows}
}

// Execute reads a snapshot and returns a restartable sequence of the
// matching records. The sequence never touches the backing store again, so
// iterating it cannot block writers or observe later changes.
func (q *Query) Execute(ctx context.Context, req *Request) (iter.Seq[*domain.Product], error) {
	snapshot, err := q.rows.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return q.build(req).Each(snapshot), nil
}

// Snapshot is Execute with the matching records materialized.
func (q *Query) Snapshot(ctx context.Context, req *Request) ([]*domain.Product, error) {
	snapshot, err := q.rows.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return q.build(req).Apply(snapshot), nil
}

func (q *Query) build(req *Request) *rowfilter.Builder[*domain.Product] {
	b := rowfilter.New[*domain.Product]()

	if !req.IncludeArchived {
		b = b.Where(func(p *domain.Product) bool { return !p.IsArchived() })
	}
	if req.Status != "" {
		status := req.Status
		b = b.Where(func(p *domain.Product) bool { return p.SaleStatus() == status })
	}
	if req.StoreName != "" {
		store := req.StoreName
		b = b.Where(func(p *domain.Product) bool { return strings.EqualFold(p.StoreName(), store) })
	}
	if req.SalesChannel != "" {
		channel := req.SalesChannel
		b = b.Where(func(p *domain.Product) bool { return strings.EqualFold(p.SalesChannel(), channel) })
	}
	if !req.PurchasedFrom.IsZero() {
		from := req.PurchasedFrom
		b = b.Where(func(p *domain.Product) bool { return !p.PurchaseDate().Before(from) })
	}
	if !req.PurchasedTo.IsZero() {
		to := req.PurchasedTo
		b = b.Where(func(p *domain.Product) bool { return !p.PurchaseDate().After(to) })
	}
	if !req.SoldFrom.IsZero() {
		from := req.SoldFrom
		b = b.Where(func(p *domain.Product) bool { return !p.SaleDate().IsZero() && !p.SaleDate().Before(from) })
	}
	if !req.SoldTo.IsZero() {
		to := req.SoldTo
		b = b.Where(func(p *domain.Product) bool { return !p.SaleDate().IsZero() && !p.SaleDate().After(to) })
	}

	if cmp := compareFor(req.SortBy); cmp != nil {
		b = b.OrderBy(cmp, req.SortDir)
	}
	return b
}

func compareFor(key SortKey) func(a, b *domain.Product) int {
	switch key {
	case SortProductNo:
		return func(a, b *domain.Product) int {
			return strings.Compare(a.ProductNo(), b.ProductNo())
		}
	case SortPurchaseDate:
		return func(a, b *domain.Product) int {
			return a.PurchaseDate().Time().Compare(b.PurchaseDate().Time())
		}
	case SortSalePrice:
		return func(a, b *domain.Product) int {
			av, bv := salePriceOrZero(a), salePriceOrZero(b)
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return nil
}

func salePriceOrZero(p *domain.Product) int64 {
	if v := p.SalePrice(); v != nil {
		return *v
	}
	return 0
}
