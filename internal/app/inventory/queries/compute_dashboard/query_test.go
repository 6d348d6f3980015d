package compute_dashboard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/list_products"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/repo"
)

func seededQuery(t *testing.T) *Query {
	t.Helper()
	ctx := t.Context()
	store := repo.NewMemoryRowStore()
	salePrice := func(v int64) *int64 { return &v }

	records := []*domain.Product{
		domain.Reconstruct("P00001", "denim jacket", "2nd STREET",
			domain.NewDate(2025, time.March, 2), 4200,
			domain.StatusSold, domain.NewDate(2025, time.March, 10), salePrice(9800),
			"mercari", false, "rev", time.Time{}),
		domain.Reconstruct("P00002", "band tee", "BookOff",
			domain.NewDate(2025, time.March, 15), 800,
			domain.StatusListed, domain.Date{}, nil,
			"", false, "rev", time.Time{}),
		domain.Reconstruct("P00003", "old lamp", "flea market",
			domain.NewDate(2025, time.March, 20), 500,
			domain.StatusSold, domain.NewDate(2025, time.March, 25), salePrice(2000),
			"", true, "rev", time.Time{}),
	}
	for _, r := range records {
		require.NoError(t, store.Append(ctx, r))
	}
	return NewQuery(list_products.NewQuery(store))
}

func TestQuery_Execute(t *testing.T) {
	ctx := t.Context()
	q := seededQuery(t)

	t.Run("march totals exclude archived", func(t *testing.T) {
		view, err := q.Execute(ctx, &Request{
			From: domain.NewDate(2025, time.March, 1),
			To:   domain.NewDate(2025, time.March, 31),
		})
		require.NoError(t, err)
		assert.EqualValues(t, 9800, view.TotalSales)
		assert.EqualValues(t, 5000, view.TotalPurchase)
		assert.EqualValues(t, 4800, view.TotalProfit)
		assert.EqualValues(t, 9800, view.SalesByChannel["mercari"])
		assert.NotContains(t, view.SalesByChannel, domain.UnspecifiedChannel)
	})

	t.Run("period outside all activity is all zero", func(t *testing.T) {
		view, err := q.Execute(ctx, &Request{
			From: domain.NewDate(2024, time.January, 1),
			To:   domain.NewDate(2024, time.December, 31),
		})
		require.NoError(t, err)
		assert.EqualValues(t, 0, view.TotalSales)
		assert.EqualValues(t, 0, view.TotalPurchase)
		assert.Empty(t, view.SalesByChannel)
	})

	t.Run("concurrent callers get identical views", func(t *testing.T) {
		req := &Request{
			From: domain.NewDate(2025, time.March, 1),
			To:   domain.NewDate(2025, time.March, 31),
		}
		want, err := q.Execute(ctx, req)
		require.NoError(t, err)

		const n = 8
		var wg sync.WaitGroup
		wg.Add(n)
		for range n {
			go func() {
				defer wg.Done()
				view, err := q.Execute(ctx, req)
				assert.NoError(t, err)
				assert.Equal(t, want, view)
			}()
		}
		wg.Wait()
	})

	t.Run("inverted period is empty, not an error", func(t *testing.T) {
		view, err := q.Execute(ctx, &Request{
			From: domain.NewDate(2025, time.March, 31),
			To:   domain.NewDate(2025, time.March, 1),
		})
		require.NoError(t, err)
		assert.EqualValues(t, 0, view.TotalSales)
		assert.EqualValues(t, 0, view.TotalPurchase)
	})
}
