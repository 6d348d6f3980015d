package m_product

import (
	"fmt"
	"strconv"
	"strings"
)

// Data is the row-level model of a product record. All values are kept in
// their wire representation: dates as YYYY-MM-DD, updated_at as RFC 3339.
type Data struct {
	ProductNo     string
	Name          string
	StoreName     string
	PurchaseDate  string
	PurchasePrice int64
	SaleStatus    string
	SaleDate      string
	SalePrice     *int64
	SalesChannel  string
	IsArchived    bool
	Revision      string
	UpdatedAt     string
}

// Row encodes the record as a sheet row in column order.
func (d *Data) Row() []any {
	salePrice := any("")
	if d.SalePrice != nil {
		salePrice = strconv.FormatInt(*d.SalePrice, 10)
	}
	archived := "FALSE"
	if d.IsArchived {
		archived = "TRUE"
	}
	return []any{
		d.ProductNo,
		d.Name,
		d.StoreName,
		d.PurchaseDate,
		strconv.FormatInt(d.PurchasePrice, 10),
		d.SaleStatus,
		d.SaleDate,
		salePrice,
		d.SalesChannel,
		archived,
		d.Revision,
		d.UpdatedAt,
	}
}

// FromRow decodes a sheet row. Cells beyond the known columns are ignored
// and missing trailing cells read as empty; rows with a malformed price or
// archived flag return an error so the caller can skip them.
func FromRow(row []any) (*Data, error) {
	purchasePrice, err := parsePrice(cell(row, ColPurchasePrice))
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", PurchasePrice, err)
	}

	var salePrice *int64
	if raw := cell(row, ColSalePrice); raw != "" {
		v, err := parsePrice(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", SalePrice, err)
		}
		salePrice = &v
	}

	return &Data{
		ProductNo:     cell(row, ColProductNo),
		Name:          cell(row, ColName),
		StoreName:     cell(row, ColStoreName),
		PurchaseDate:  cell(row, ColPurchaseDate),
		PurchasePrice: purchasePrice,
		SaleStatus:    cell(row, ColSaleStatus),
		SaleDate:      cell(row, ColSaleDate),
		SalePrice:     salePrice,
		SalesChannel:  cell(row, ColSalesChannel),
		IsArchived:    parseBool(cell(row, ColIsArchived)),
		Revision:      cell(row, ColRevision),
		UpdatedAt:     cell(row, ColUpdatedAt),
	}, nil
}

func cell(row []any, col int) string {
	if col >= len(row) || row[col] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[col]))
}

// parsePrice accepts plain integers plus the thousands separators a
// hand-edited sheet tends to contain.
func parsePrice(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return v, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true
	}
	return false
}
