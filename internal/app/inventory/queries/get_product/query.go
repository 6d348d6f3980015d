package get_product

import (
	"context"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
)

// Request contains the record key to retrieve.
type Request struct {
	ProductNo string
}

// Query handles the get record query use case.
type Query struct {
	rows contracts.RowStore
}

// NewQuery creates a new get record query.
func NewQuery(rows contracts.RowStore) *Query {
	return &Query{rows: rows}
}

// Execute retrieves a record by product_no, archived or not.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	return q.rows.Get(ctx, req.ProductNo)
}
