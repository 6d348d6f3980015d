package m_product

// Column layout of the product sheet. One row per record, with a single
// header row holding the field names in exactly this order.
const SheetName = "products"

const (
	ColProductNo = iota
	ColName
	ColStoreName
	ColPurchaseDate
	ColPurchasePrice
	ColSaleStatus
	ColSaleDate
	ColSalePrice
	ColSalesChannel
	ColIsArchived
	ColRevision
	ColUpdatedAt

	NumColumns = 12
)

// Field name constants for the header row.
const (
	ProductNo     = "product_no"
	Name          = "name"
	StoreName     = "store_name"
	PurchaseDate  = "purchase_date"
	PurchasePrice = "purchase_price"
	SaleStatus    = "sale_status"
	SaleDate      = "sale_date"
	SalePrice     = "sale_price"
	SalesChannel  = "sales_channel"
	IsArchived    = "is_archived"
	Revision      = "revision"
	UpdatedAt     = "updated_at"
)

// HeaderRow returns the header row in column order.
func HeaderRow() []string {
	return []string{
		ProductNo,
		Name,
		StoreName,
		PurchaseDate,
		PurchasePrice,
		SaleStatus,
		SaleDate,
		SalePrice,
		SalesChannel,
		IsArchived,
		Revision,
		UpdatedAt,
	}
}
