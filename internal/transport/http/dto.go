package http

import (
	"time"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
)

// CreateProductRequest is the inbound payload for record creation.
// product_no, revision and updated_at are system-managed and not accepted.
type CreateProductRequest struct {
	Name          string `json:"name" validate:"required"`
	StoreName     string `json:"store_name" validate:"required"`
	PurchaseDate  string `json:"purchase_date" validate:"required,datetime=2006-01-02"`
	PurchasePrice *int64 `json:"purchase_price" validate:"required,gte=0"`
	SaleStatus    string `json:"sale_status" validate:"omitempty,oneof=unlisted listed sold"`
	SaleDate      string `json:"sale_date" validate:"omitempty,datetime=2006-01-02"`
	SalePrice     *int64 `json:"sale_price" validate:"omitempty,gte=0"`
	SalesChannel  string `json:"sales_channel"`
}

// UpdateProductRequest is the inbound payload for a revision-checked patch.
// Absent fields are left unchanged.
type UpdateProductRequest struct {
	ExpectedRevision string  `json:"expected_revision" validate:"required"`
	Name             *string `json:"name"`
	StoreName        *string `json:"store_name"`
	PurchaseDate     *string `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	PurchasePrice    *int64  `json:"purchase_price" validate:"omitempty,gte=0"`
	SaleStatus       *string `json:"sale_status" validate:"omitempty,oneof=unlisted listed sold"`
	SaleDate         *string `json:"sale_date" validate:"omitempty,datetime=2006-01-02"`
	SalePrice        *int64  `json:"sale_price" validate:"omitempty,gte=0"`
	SalesChannel     *string `json:"sales_channel"`
}

// Patch converts the payload to a domain patch. Dates were already
// format-checked, so parse failures cannot occur here; an explicitly empty
// sale_date means "clear".
func (r *UpdateProductRequest) Patch() domain.Patch {
	patch := domain.Patch{
		Name:          r.Name,
		StoreName:     r.StoreName,
		PurchasePrice: r.PurchasePrice,
		SalePrice:     r.SalePrice,
		SalesChannel:  r.SalesChannel,
	}
	if r.PurchaseDate != nil {
		d, _ := domain.ParseDate(*r.PurchaseDate)
		patch.PurchaseDate = &d
	}
	if r.SaleDate != nil {
		var d domain.Date
		if *r.SaleDate != "" {
			d, _ = domain.ParseDate(*r.SaleDate)
		}
		patch.SaleDate = &d
	}
	if r.SaleStatus != nil {
		status := domain.SaleStatus(*r.SaleStatus)
		patch.SaleStatus = &status
	}
	return patch
}

// ArchiveProductRequest is the inbound payload for archiving.
type ArchiveProductRequest struct {
	ExpectedRevision string `json:"expected_revision" validate:"required"`
}

// ProductResponse is the outbound representation of a record.
type ProductResponse struct {
	ProductNo     string `json:"product_no"`
	Name          string `json:"name"`
	StoreName     string `json:"store_name"`
	PurchaseDate  string `json:"purchase_date"`
	PurchasePrice int64  `json:"purchase_price"`
	SaleStatus    string `json:"sale_status"`
	SaleDate      string `json:"sale_date,omitempty"`
	SalePrice     *int64 `json:"sale_price,omitempty"`
	SalesChannel  string `json:"sales_channel,omitempty"`
	IsArchived    bool   `json:"is_archived"`
	Revision      string `json:"revision"`
	UpdatedAt     string `json:"updated_at"`
	Profit        *int64 `json:"profit,omitempty"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		ProductNo:     p.ProductNo(),
		Name:          p.Name(),
		StoreName:     p.StoreName(),
		PurchaseDate:  p.PurchaseDate().String(),
		PurchasePrice: p.PurchasePrice(),
		SaleStatus:    string(p.SaleStatus()),
		SaleDate:      p.SaleDate().String(),
		SalePrice:     p.SalePrice(),
		SalesChannel:  p.SalesChannel(),
		IsArchived:    p.IsArchived(),
		Revision:      p.Revision(),
		UpdatedAt:     p.UpdatedAt().UTC().Format(time.RFC3339),
	}
	if profit, ok := p.Profit(); ok {
		resp.Profit = &profit
	}
	return resp
}

// ListProductsResponse is the outbound representation of a listing.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

// ChannelsResponse lists the known sales channels.
type ChannelsResponse struct {
	Channels []string `json:"channels"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Fields  []domain.FieldViolation `json:"fields,omitempty"`
	Current *ProductResponse        `json:"current,omitempty"`
}
