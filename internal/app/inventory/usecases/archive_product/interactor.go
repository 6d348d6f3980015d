package archive_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/clock"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/keylock"
)

// Request contains the record to archive and the caller's revision.
type Request struct {
	ProductNo        string
	ExpectedRevision string
}

// Interactor handles the archive (soft delete) use case.
type Interactor struct {
	rows  contracts.RowStore
	audit contracts.AuditSink
	locks *keylock.Map
	clock clock.Clock
}

// NewInteractor creates a new archive interactor.
func NewInteractor(rows contracts.RowStore, audit contracts.AuditSink, locks *keylock.Map, clk clock.Clock) *Interactor {
	return &Interactor{
		rows:  rows,
		audit: audit,
		locks: locks,
		clock: clk,
	}
}

// Execute marks the record archived under the same CAS discipline as
// update. The row is kept; history is never erased.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	unlock := i.locks.Lock(req.ProductNo)
	defer unlock()

	current, err := i.rows.Get(ctx, req.ProductNo)
	if err != nil {
		return nil, err
	}

	if current.Revision() != req.ExpectedRevision {
		return nil, &domain.ConflictError{Current: current}
	}

	now := i.clock.Now()
	if err := current.Archive(now); err != nil {
		return nil, err
	}

	current.Stamp(uuid.NewString(), now)

	if err := i.rows.Replace(ctx, current); err != nil {
		return nil, fmt.Errorf("write record %s: %w", req.ProductNo, err)
	}

	for _, event := range current.Events() {
		i.audit.Publish(ctx, event)
	}
	current.ClearEvents()

	return current, nil
}
