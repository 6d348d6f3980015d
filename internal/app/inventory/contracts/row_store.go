package contracts

import (
	"context"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
)

// RowStore is the persistence collaborator: a dumb tabular row collection.
// It offers read-all and single-row write primitives and persists a write
// durably before returning. It provides no transactions and no locking;
// atomicity and conflict detection live entirely in the store interactors.
type RowStore interface {
	// ReadAll returns a snapshot of every record, including archived ones.
	// Rows that fail to decode are skipped, not surfaced as errors.
	ReadAll(ctx context.Context) ([]*domain.Product, error)

	// Get returns the record for productNo or domain.ErrRecordNotFound.
	Get(ctx context.Context, productNo string) (*domain.Product, error)

	// Append adds a new record row. The caller guarantees key uniqueness.
	Append(ctx context.Context, product *domain.Product) error

	// Replace overwrites the full row whose key matches the record, or
	// returns domain.ErrRecordNotFound. No other row is touched.
	Replace(ctx context.Context, product *domain.Product) error
}
