package update_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/clock"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/keylock"
)

// Request contains the target key, the revision the caller last observed,
// and the partial field changes.
type Request struct {
	ProductNo        string
	ExpectedRevision string
	Patch            domain.Patch
}

// Interactor handles the revision-checked update use case.
type Interactor struct {
	rows  contracts.RowStore
	audit contracts.AuditSink
	locks *keylock.Map
	clock clock.Clock
}

// NewInteractor creates a new update interactor.
func NewInteractor(rows contracts.RowStore, audit contracts.AuditSink, locks *keylock.Map, clk clock.Clock) *Interactor {
	return &Interactor{
		rows:  rows,
		audit: audit,
		locks: locks,
		clock: clk,
	}
}

// Execute performs the single compare-and-swap gate against lost updates:
// the patch is applied only when ExpectedRevision matches the stored
// revision, and the load-compare-write sequence holds the per-key lock so
// no concurrent writer can slip between comparison and write. On a
// mismatch the current server-side record is returned inside the
// ConflictError for caller-side re-merge; nothing is written.
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
	if err := current.ApplyPatch(req.Patch, now); err != nil {
		return nil, err
	}

	// A patch that changes nothing is not a mutation: no write, no new
	// revision.
	if !current.Changes().HasChanges() {
		return current, nil
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
