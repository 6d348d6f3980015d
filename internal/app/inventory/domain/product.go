package domain

import (
	"strings"
	"time"
)

// Field names for change tracking and validation reporting.
const (
	FieldName          = "name"
	FieldStoreName     = "store_name"
	FieldPurchaseDate  = "purchase_date"
	FieldPurchasePrice = "purchase_price"
	FieldSaleStatus    = "sale_status"
	FieldSaleDate      = "sale_date"
	FieldSalePrice     = "sale_price"
	FieldSalesChannel  = "sales_channel"
	FieldIsArchived    = "is_archived"
)

// SaleStatus represents the listing lifecycle of a product.
type SaleStatus string

const (
	StatusUnlisted SaleStatus = "unlisted"
	StatusListed   SaleStatus = "listed"
	StatusSold     SaleStatus = "sold"
)

// Valid reports whether the status is one of the enumerated values.
func (s SaleStatus) Valid() bool {
	switch s {
	case StatusUnlisted, StatusListed, StatusSold:
		return true
	}
	return false
}

// Product is the aggregate root for a reselling-inventory record.
// Identity and system fields (product_no, revision, updated_at) are owned by
// the record store; callers mutate business fields only through ApplyPatch
// and Archive so the sale-status rules hold at all times.
type Product struct {
	productNo     string
	name          string
	storeName     string
	purchaseDate  Date
	purchasePrice int64
	saleStatus    SaleStatus
	saleDate      Date
	salePrice     *int64
	salesChannel  string
	archived      bool
	revision      string
	updatedAt     time.Time

	// Change tracking for audit events and no-op write elision
	changes *ChangeTracker

	// Audit events to be published after a successful write
	events []Event
}

// NewProductInput carries the caller-supplied fields for creation.
// product_no, revision and updated_at are never accepted from the caller.
type NewProductInput struct {
	Name          string
	StoreName     string
	PurchaseDate  Date
	PurchasePrice int64
	SaleStatus    SaleStatus
	SaleDate      Date
	SalePrice     *int64
	SalesChannel  string
}

// NewProduct validates the input and creates a new aggregate. All failing
// fields are reported together in a single ValidationError.
func NewProduct(productNo string, in NewProductInput, now time.Time) (*Product, error) {
	var errs violationList

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs.add(FieldName, "is required")
	}
	storeName := strings.TrimSpace(in.StoreName)
	if storeName == "" {
		errs.add(FieldStoreName, "is required")
	}
	if in.PurchaseDate.IsZero() {
		errs.add(FieldPurchaseDate, "is required")
	}
	if in.PurchasePrice < 0 {
		errs.add(FieldPurchasePrice, "must be >= 0")
	}
	if !in.SaleStatus.Valid() {
		errs.add(FieldSaleStatus, "must be one of %q, %q, %q", StatusUnlisted, StatusListed, StatusSold)
	}

	saleDate := in.SaleDate
	salePrice := in.SalePrice
	if in.SaleStatus == StatusSold {
		if salePrice == nil {
			errs.add(FieldSalePrice, "is required when sale_status is %q", StatusSold)
		} else if *salePrice < 0 {
			errs.add(FieldSalePrice, "must be >= 0")
		}
		if saleDate.IsZero() {
			saleDate = DateOf(now)
		}
		if !in.PurchaseDate.IsZero() && saleDate.Before(in.PurchaseDate) {
			errs.add(FieldSaleDate, "must not be earlier than purchase_date")
		}
	} else {
		if !saleDate.IsZero() {
			errs.add(FieldSaleDate, "is only allowed when sale_status is %q", StatusSold)
		}
		if salePrice != nil {
			errs.add(FieldSalePrice, "is only allowed when sale_status is %q", StatusSold)
		}
	}

	if err := errs.err(); err != nil {
		return nil, err
	}

	p := &Product{
		productNo:     productNo,
		name:          name,
		storeName:     storeName,
		purchaseDate:  in.PurchaseDate,
		purchasePrice: in.PurchasePrice,
		saleStatus:    in.SaleStatus,
		saleDate:      saleDate,
		salePrice:     copyInt64(salePrice),
		salesChannel:  strings.TrimSpace(in.SalesChannel),
		changes:       NewChangeTracker(),
	}

	p.changes.MarkDirty(FieldName)
	p.changes.MarkDirty(FieldStoreName)
	p.changes.MarkDirty(FieldPurchaseDate)
	p.changes.MarkDirty(FieldPurchasePrice)
	p.changes.MarkDirty(FieldSaleStatus)

	p.recordEvent(&RecordCreatedEvent{
		ProductNo:     p.productNo,
		Name:          p.name,
		StoreName:     p.storeName,
		PurchasePrice: p.purchasePrice,
		At:            now,
	})

	return p, nil
}

// Reconstruct reconstitutes a Product from the backing store.
func Reconstruct(
	productNo, name, storeName string,
	purchaseDate Date,
	purchasePrice int64,
	saleStatus SaleStatus,
	saleDate Date,
	salePrice *int64,
	salesChannel string,
	archived bool,
	revision string,
	updatedAt time.Time,
) *Product {
	return &Product{
		productNo:     productNo,
		name:          name,
		storeName:     storeName,
		purchaseDate:  purchaseDate,
		purchasePrice: purchasePrice,
		saleStatus:    saleStatus,
		saleDate:      saleDate,
		salePrice:     copyInt64(salePrice),
		salesChannel:  salesChannel,
		archived:      archived,
		revision:      revision,
		updatedAt:     updatedAt,
		changes:       NewChangeTracker(),
	}
}

// Getters
func (p *Product) ProductNo() string      { return p.productNo }
func (p *Product) Name() string           { return p.name }
func (p *Product) StoreName() string      { return p.storeName }
func (p *Product) PurchaseDate() Date     { return p.purchaseDate }
func (p *Product) PurchasePrice() int64   { return p.purchasePrice }
func (p *Product) SaleStatus() SaleStatus { return p.saleStatus }
func (p *Product) SaleDate() Date         { return p.saleDate }
func (p *Product) SalePrice() *int64      { return copyInt64(p.salePrice) }
func (p *Product) SalesChannel() string   { return p.salesChannel }
func (p *Product) IsArchived() bool       { return p.archived }
func (p *Product) Revision() string       { return p.revision }
func (p *Product) UpdatedAt() time.Time   { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker { return p.changes }
func (p *Product) Events() []Event        { return p.events }

// Profit returns sale_price - purchase_price for a sold record.
// The second return value is false while the record is not sold.
func (p *Product) Profit() (int64, bool) {
	if p.saleStatus != StatusSold || p.salePrice == nil {
		return 0, false
	}
	return *p.salePrice - p.purchasePrice, true
}

// Patch is a partial update of the mutable fields. Nil means "no change";
// product_no, revision and updated_at cannot be patched.
type Patch struct {
	Name          *string
	StoreName     *string
	PurchaseDate  *Date
	PurchasePrice *int64
	SaleStatus    *SaleStatus
	SaleDate      *Date
	SalePrice     *int64
	SalesChannel  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.StoreName == nil && p.PurchaseDate == nil &&
		p.PurchasePrice == nil && p.SaleStatus == nil && p.SaleDate == nil &&
		p.SalePrice == nil && p.SalesChannel == nil
}

// ApplyPatch validates the patch against the current state and the
// sale-status rules, then applies it. Either every field is applied or,
// on a ValidationError, the aggregate is left completely unchanged.
//
// Entering "sold" requires a sale_price (from the patch or already present)
// and auto-fills sale_date from now when absent. Leaving "sold" clears
// sale_date and sale_price unless the patch explicitly re-supplies them.
func (p *Product) ApplyPatch(patch Patch, now time.Time) error {
	if p.archived {
		return ErrAlreadyArchived
	}

	var errs violationList

	name := p.name
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			errs.add(FieldName, "must not be empty")
		}
	}

	storeName := p.storeName
	if patch.StoreName != nil {
		storeName = strings.TrimSpace(*patch.StoreName)
		if storeName == "" {
			errs.add(FieldStoreName, "must not be empty")
		}
	}

	purchaseDate := p.purchaseDate
	if patch.PurchaseDate != nil {
		if patch.PurchaseDate.IsZero() {
			errs.add(FieldPurchaseDate, "must not be empty")
		} else {
			purchaseDate = *patch.PurchaseDate
		}
	}

	purchasePrice := p.purchasePrice
	if patch.PurchasePrice != nil {
		purchasePrice = *patch.PurchasePrice
		if purchasePrice < 0 {
			errs.add(FieldPurchasePrice, "must be >= 0")
		}
	}

	salesChannel := p.salesChannel
	if patch.SalesChannel != nil {
		salesChannel = strings.TrimSpace(*patch.SalesChannel)
	}

	status := p.saleStatus
	if patch.SaleStatus != nil {
		status = *patch.SaleStatus
		if !status.Valid() {
			errs.add(FieldSaleStatus, "must be one of %q, %q, %q", StatusUnlisted, StatusListed, StatusSold)
		}
	}

	saleDate := p.saleDate
	salePrice := copyInt64(p.salePrice)
	if patch.SaleDate != nil {
		saleDate = *patch.SaleDate
	}
	if patch.SalePrice != nil {
		salePrice = copyInt64(patch.SalePrice)
		if *salePrice < 0 {
			errs.add(FieldSalePrice, "must be >= 0")
		}
	}

	switch {
	case status == StatusSold && status.Valid():
		if salePrice == nil {
			errs.add(FieldSalePrice, "is required when sale_status is %q", StatusSold)
		}
		if saleDate.IsZero() {
			saleDate = DateOf(now)
		}
		if saleDate.Before(purchaseDate) {
			errs.add(FieldSaleDate, "must not be earlier than purchase_date")
		}
	case p.saleStatus == StatusSold && status != StatusSold:
		// Leaving "sold": clear the sale fields unless explicitly re-supplied.
		if patch.SaleDate == nil {
			saleDate = Date{}
		}
		if patch.SalePrice == nil {
			salePrice = nil
		}
	default:
		if patch.SaleDate != nil && !patch.SaleDate.IsZero() {
			errs.add(FieldSaleDate, "is only allowed when sale_status is %q", StatusSold)
		}
		if patch.SalePrice != nil {
			errs.add(FieldSalePrice, "is only allowed when sale_status is %q", StatusSold)
		}
	}

	if err := errs.err(); err != nil {
		return err
	}

	p.setIfChanged(FieldName, &p.name, name)
	p.setIfChanged(FieldStoreName, &p.storeName, storeName)
	if purchaseDate != p.purchaseDate {
		p.purchaseDate = purchaseDate
		p.changes.MarkDirty(FieldPurchaseDate)
	}
	if purchasePrice != p.purchasePrice {
		p.purchasePrice = purchasePrice
		p.changes.MarkDirty(FieldPurchasePrice)
	}
	if status != p.saleStatus {
		p.saleStatus = status
		p.changes.MarkDirty(FieldSaleStatus)
	}
	if saleDate != p.saleDate {
		p.saleDate = saleDate
		p.changes.MarkDirty(FieldSaleDate)
	}
	if !int64PtrEqual(salePrice, p.salePrice) {
		p.salePrice = salePrice
		p.changes.MarkDirty(FieldSalePrice)
	}
	p.setIfChanged(FieldSalesChannel, &p.salesChannel, salesChannel)

	if p.changes.HasChanges() {
		p.recordEvent(&RecordUpdatedEvent{
			ProductNo: p.productNo,
			Fields:    p.changes.Fields(),
			At:        now,
		})
	}

	return nil
}

// Archive soft-deletes the record. History is preserved.
func (p *Product) Archive(now time.Time) error {
	if p.archived {
		return ErrAlreadyArchived
	}

	p.archived = true
	p.changes.MarkDirty(FieldIsArchived)

	p.recordEvent(&RecordArchivedEvent{
		ProductNo: p.productNo,
		At:        now,
	})

	return nil
}

// Stamp assigns a fresh revision token and advances updated_at.
// Only the record store calls this; updated_at never goes backwards.
func (p *Product) Stamp(revision string, at time.Time) {
	p.revision = revision
	if at.After(p.updatedAt) {
		p.updatedAt = at
	}
}

// ClearEvents drops all recorded audit events (called after publishing).
func (p *Product) ClearEvents() {
	p.events = nil
}

func (p *Product) setIfChanged(field string, target *string, value string) {
	if *target != value {
		*target = value
		p.changes.MarkDirty(field)
	}
}

func (p *Product) recordEvent(event Event) {
	p.events = append(p.events, event)
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
