package m_product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData_Row(t *testing.T) {
	salePrice := int64(9800)
	d := &Data{
		ProductNo:     "P00001",
		Name:          "Levi's 501",
		StoreName:     "2nd STREET",
		PurchaseDate:  "2025-03-01",
		PurchasePrice: 3500,
		SaleStatus:    "sold",
		SaleDate:      "2025-03-10",
		SalePrice:     &salePrice,
		SalesChannel:  "mercari",
		IsArchived:    false,
		Revision:      "rev-1",
		UpdatedAt:     "2025-03-10T09:00:00Z",
	}

	row := d.Row()
	require.Len(t, row, NumColumns)
	assert.Equal(t, "P00001", row[ColProductNo])
	assert.Equal(t, "3500", row[ColPurchasePrice])
	assert.Equal(t, "9800", row[ColSalePrice])
	assert.Equal(t, "FALSE", row[ColIsArchived])

	t.Run("nil sale price encodes as empty cell", func(t *testing.T) {
		d.SalePrice = nil
		assert.Equal(t, any(""), d.Row()[ColSalePrice])
	})
}

func TestFromRow(t *testing.T) {
	t.Run("full row decodes", func(t *testing.T) {
		d, err := FromRow([]any{
			"P00001", "Levi's 501", "2nd STREET", "2025-03-01", "3500",
			"sold", "2025-03-10", "9800", "mercari", "TRUE", "rev-1", "2025-03-10T09:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, "P00001", d.ProductNo)
		assert.EqualValues(t, 3500, d.PurchasePrice)
		require.NotNil(t, d.SalePrice)
		assert.EqualValues(t, 9800, *d.SalePrice)
		assert.True(t, d.IsArchived)
	})

	t.Run("short row reads missing cells as empty", func(t *testing.T) {
		d, err := FromRow([]any{"P00002", "band tee"})
		require.NoError(t, err)
		assert.Equal(t, "P00002", d.ProductNo)
		assert.Equal(t, "", d.PurchaseDate)
		assert.EqualValues(t, 0, d.PurchasePrice)
		assert.Nil(t, d.SalePrice)
		assert.False(t, d.IsArchived)
	})

	t.Run("hand-edited price with thousands separator", func(t *testing.T) {
		d, err := FromRow([]any{"P00003", "boots", "store", "2025-03-01", "12,800"})
		require.NoError(t, err)
		assert.EqualValues(t, 12800, d.PurchasePrice)
	})

	t.Run("malformed price returns error", func(t *testing.T) {
		_, err := FromRow([]any{"P00004", "x", "y", "2025-03-01", "thirty"})
		assert.Error(t, err)
	})

	t.Run("extra trailing cells ignored", func(t *testing.T) {
		row := make([]any, NumColumns+3)
		row[ColProductNo] = "P00005"
		row[ColPurchasePrice] = "100"
		d, err := FromRow(row)
		require.NoError(t, err)
		assert.Equal(t, "P00005", d.ProductNo)
	})
}

func TestHeaderRow(t *testing.T) {
	header := HeaderRow()
	require.Len(t, header, NumColumns)
	assert.Equal(t, ProductNo, header[ColProductNo])
	assert.Equal(t, UpdatedAt, header[ColUpdatedAt])
}
