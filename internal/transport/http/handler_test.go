package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/audit"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/compute_dashboard"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/get_product"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/list_channels"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/list_products"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/repo"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/usecases/archive_product"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/usecases/create_product"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/usecases/update_product"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/clock"
	"github.com/hayasaka-dev/resale-ledger/internal/pkg/keylock"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return routerFor(t, repo.NewMemoryRowStore())
}

func routerFor(t *testing.T, store contracts.RowStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := clock.NewMockClock(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC))
	locks := keylock.New()
	sink := audit.NopSink{}
	logger := zap.NewNop()

	listQuery := list_products.NewQuery(store)
	handler := NewHandler(
		create_product.NewInteractor(store, sink, locks, clk),
		update_product.NewInteractor(store, sink, locks, clk),
		archive_product.NewInteractor(store, sink, locks, clk),
		get_product.NewQuery(store),
		listQuery,
		compute_dashboard.NewQuery(listQuery),
		list_channels.NewQuery(store, []string{"mercari", "ebay"}),
		logger,
	)

	engine := gin.New()
	handler.Register(engine)
	return engine
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createRecord(t *testing.T, r *gin.Engine) ProductResponse {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
		"name":           "Levi's 501 vintage",
		"store_name":     "2nd STREET",
		"purchase_date":  "2025-03-01",
		"purchase_price": 3500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[ProductResponse](t, rec)
}

func TestHandler_Create(t *testing.T) {
	r := newTestRouter(t)

	t.Run("creates with system fields assigned", func(t *testing.T) {
		created := createRecord(t, r)
		assert.Equal(t, "P00001", created.ProductNo)
		assert.Equal(t, "unlisted", created.SaleStatus)
		assert.NotEmpty(t, created.Revision)
		assert.NotEmpty(t, created.UpdatedAt)
		assert.Nil(t, created.Profit)
	})

	t.Run("missing fields get 422 with all violations", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
			"purchase_price": -5,
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		resp := decode[ErrorResponse](t, rec)
		fields := make([]string, 0, len(resp.Fields))
		for _, f := range resp.Fields {
			fields = append(fields, f.Field)
		}
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "store_name")
		assert.Contains(t, fields, "purchase_date")
		assert.Contains(t, fields, "purchase_price")
	})

	t.Run("malformed json gets 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetAndList(t *testing.T) {
	r := newTestRouter(t)
	created := createRecord(t, r)

	t.Run("get by key", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/products/"+created.ProductNo, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[ProductResponse](t, rec)
		assert.Equal(t, created.Revision, got.Revision)
	})

	t.Run("unknown key gets 404", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/products/P99999", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list returns the collection", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/products", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[ListProductsResponse](t, rec)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("bad sort key gets 422", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/products?sort_by=price", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("bad date filter gets 422", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/products?purchased_from=03-01-2025", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	r := newTestRouter(t)
	created := createRecord(t, r)

	t.Run("marks sold and reports profit", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/api/v1/products/"+created.ProductNo, gin.H{
			"expected_revision": created.Revision,
			"sale_status":       "sold",
			"sale_price":        9800,
			"sales_channel":     "mercari",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		updated := decode[ProductResponse](t, rec)
		assert.Equal(t, "sold", updated.SaleStatus)
		assert.Equal(t, "2025-03-10", updated.SaleDate)
		assert.NotEqual(t, created.Revision, updated.Revision)
		require.NotNil(t, updated.Profit)
		assert.EqualValues(t, 6300, *updated.Profit)
	})

	t.Run("stale revision gets 409 with current record", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/api/v1/products/"+created.ProductNo, gin.H{
			"expected_revision": created.Revision, // now stale
			"name":              "renamed",
		})
		require.Equal(t, http.StatusConflict, rec.Code)

		resp := decode[ErrorResponse](t, rec)
		require.NotNil(t, resp.Current)
		assert.Equal(t, created.ProductNo, resp.Current.ProductNo)
		assert.Equal(t, "sold", resp.Current.SaleStatus)
	})

	t.Run("missing expected_revision gets 422", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/api/v1/products/"+created.ProductNo, gin.H{
			"name": "renamed",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHandler_Archive(t *testing.T) {
	r := newTestRouter(t)
	created := createRecord(t, r)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/products/"+created.ProductNo+"/archive", gin.H{
		"expected_revision": created.Revision,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	archived := decode[ProductResponse](t, rec)
	assert.True(t, archived.IsArchived)

	t.Run("archived record drops out of default listing", func(t *testing.T) {
		list := doJSON(t, r, http.MethodGet, "/api/v1/products", nil)
		require.Equal(t, http.StatusOK, list.Code)
		assert.Equal(t, 0, decode[ListProductsResponse](t, list).Count)

		withArchived := doJSON(t, r, http.MethodGet, "/api/v1/products?include_archived=true", nil)
		require.Equal(t, http.StatusOK, withArchived.Code)
		assert.Equal(t, 1, decode[ListProductsResponse](t, withArchived).Count)
	})

	t.Run("second archive gets 409", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/products/"+created.ProductNo+"/archive", gin.H{
			"expected_revision": archived.Revision,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_Dashboard(t *testing.T) {
	r := newTestRouter(t)
	created := createRecord(t, r)

	rec := doJSON(t, r, http.MethodPatch, "/api/v1/products/"+created.ProductNo, gin.H{
		"expected_revision": created.Revision,
		"sale_status":       "sold",
		"sale_price":        9800,
		"sales_channel":     "mercari",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("totals for the period", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/dashboard?from=2025-03-01&to=2025-03-31", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var view struct {
			TotalSales     int64            `json:"total_sales"`
			TotalPurchase  int64            `json:"total_purchase"`
			TotalProfit    int64            `json:"total_profit"`
			SalesByChannel map[string]int64 `json:"sales_by_channel"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.EqualValues(t, 9800, view.TotalSales)
		assert.EqualValues(t, 3500, view.TotalPurchase)
		assert.EqualValues(t, 6300, view.TotalProfit)
		assert.EqualValues(t, 9800, view.SalesByChannel["mercari"])
	})

	t.Run("missing period params get 422", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/dashboard?from=2025-03-01", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

// downRows is a RowStore whose backing medium is unreachable.
type downRows struct{}

func (downRows) ReadAll(context.Context) ([]*domain.Product, error) {
	return nil, fmt.Errorf("read rows: %w", domain.ErrStoreUnavailable)
}

func (downRows) Get(context.Context, string) (*domain.Product, error) {
	return nil, fmt.Errorf("read rows: %w", domain.ErrStoreUnavailable)
}

func (downRows) Append(context.Context, *domain.Product) error {
	return fmt.Errorf("append row: %w", domain.ErrStoreUnavailable)
}

func (downRows) Replace(context.Context, *domain.Product) error {
	return fmt.Errorf("update row: %w", domain.ErrStoreUnavailable)
}

func TestHandler_StoreUnavailable(t *testing.T) {
	r := routerFor(t, downRows{})

	t.Run("list gets 503", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/products", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "backing store unavailable", decode[ErrorResponse](t, rec).Error)
	})

	t.Run("create gets 503", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/v1/products", gin.H{
			"name":           "Levi's 501 vintage",
			"store_name":     "2nd STREET",
			"purchase_date":  "2025-03-01",
			"purchase_price": 3500,
		})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("update gets 503", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/api/v1/products/P00001", gin.H{
			"expected_revision": "rev-1",
			"name":              "renamed",
		})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("dashboard gets 503", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/dashboard?from=2025-03-01&to=2025-03-31", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandler_Channels(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/channels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ChannelsResponse](t, rec)
	assert.Equal(t, []string{"mercari", "ebay"}, resp.Channels)
}
