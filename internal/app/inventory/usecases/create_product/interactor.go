package create_product

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/clock"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/keylock"
)

// Product numbers are a single-letter prefix plus a fixed-width sequence,
// e.g. P00042.
const (
	keyPrefix = "P"
	keyDigits = 5
)

// allocationKey serializes product_no allocation across concurrent creates.
// Record keys are product numbers, so the "#" makes collision impossible.
const allocationKey = "product_no#alloc"

// Request contains the caller-supplied fields for a new record.
type Request struct {
	Name          string
	StoreName     string
	PurchaseDate  domain.Date
	PurchasePrice int64
	SaleStatus    domain.SaleStatus // empty defaults to unlisted
	SaleDate      domain.Date
	SalePrice     *int64
	SalesChannel  string
}

// Interactor handles the create record use case.
type Interactor struct {
	rows  contracts.RowStore
	audit contracts.AuditSink
	locks *keylock.Map
	clock clock.Clock
}

// NewInteractor creates a new create interactor.
func NewInteractor(rows contracts.RowStore, audit contracts.AuditSink, locks *keylock.Map, clk clock.Clock) *Interactor {
	return &Interactor{
		rows:  rows,
		audit: audit,
		locks: locks,
		clock: clk,
	}
}

// Execute validates the input, allocates the next product_no, and writes the
// full record. Allocation holds a dedicated lock so no two concurrent
// creates can draw the same number, archived records included.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	status := req.SaleStatus
	if status == "" {
		status = domain.StatusUnlisted
	}

	unlock := i.locks.Lock(allocationKey)
	defer unlock()

	snapshot, err := i.rows.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate product_no: %w", err)
	}
	productNo := nextProductNo(snapshot)

	now := i.clock.Now()
	product, err := domain.NewProduct(productNo, domain.NewProductInput{
		Name:          req.Name,
		StoreName:     req.StoreName,
		PurchaseDate:  req.PurchaseDate,
		PurchasePrice: req.PurchasePrice,
		SaleStatus:    status,
		SaleDate:      req.SaleDate,
		SalePrice:     req.SalePrice,
		SalesChannel:  req.SalesChannel,
	}, now)
	if err != nil {
		return nil, err
	}

	product.Stamp(uuid.NewString(), now)

	if err := i.rows.Append(ctx, product); err != nil {
		return nil, fmt.Errorf("write record %s: %w", productNo, err)
	}

	for _, event := range product.Events() {
		i.audit.Publish(ctx, event)
	}
	product.ClearEvents()

	return product, nil
}

// nextProductNo returns one past the highest allocated sequence number.
// Numbers of archived records stay taken; keys are never reassigned.
func nextProductNo(snapshot []*domain.Product) string {
	maxSeq := int64(0)
	for _, p := range snapshot {
		no := p.ProductNo()
		if !strings.HasPrefix(no, keyPrefix) {
			continue
		}
		seq, err := strconv.ParseInt(no[len(keyPrefix):], 10, 64)
		if err != nil || seq <= maxSeq {
			continue
		}
		maxSeq = seq
	}
	return fmt.Sprintf("%s%0*d", keyPrefix, keyDigits, maxSeq+1)
}
