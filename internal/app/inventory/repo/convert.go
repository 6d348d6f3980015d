package repo

import (
	"fmt"
	"time"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/models/m_product"
)

// dataToDomain reconstructs a domain aggregate from its row model.
func dataToDomain(data *m_product.Data) (*domain.Product, error) {
	if data.ProductNo == "" {
		return nil, fmt.Errorf("missing %s", m_product.ProductNo)
	}

	purchaseDate, err := domain.ParseDate(data.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", m_product.PurchaseDate, err)
	}

	var saleDate domain.Date
	if data.SaleDate != "" {
		saleDate, err = domain.ParseDate(data.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", m_product.SaleDate, err)
		}
	}

	status := domain.SaleStatus(data.SaleStatus)
	if !status.Valid() {
		return nil, fmt.Errorf("column %s: unknown value %q", m_product.SaleStatus, data.SaleStatus)
	}

	var updatedAt time.Time
	if data.UpdatedAt != "" {
		updatedAt, err = time.Parse(time.RFC3339, data.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", m_product.UpdatedAt, err)
		}
	}

	return domain.Reconstruct(
		data.ProductNo,
		data.Name,
		data.StoreName,
		purchaseDate,
		data.PurchasePrice,
		status,
		saleDate,
		data.SalePrice,
		data.SalesChannel,
		data.IsArchived,
		data.Revision,
		updatedAt.UTC(),
	), nil
}

// domainToData converts a domain aggregate to its row model.
func domainToData(p *domain.Product) *m_product.Data {
	updatedAt := ""
	if !p.UpdatedAt().IsZero() {
		updatedAt = p.UpdatedAt().UTC().Format(time.RFC3339)
	}
	return &m_product.Data{
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
		UpdatedAt:     updatedAt,
	}
}
