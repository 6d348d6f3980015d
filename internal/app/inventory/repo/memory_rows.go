package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/models/m_product"
)

// MemoryRowStore is a map-backed RowStore for tests and local runs.
// Records are held in their row form so every read hands out a fresh
// aggregate, matching the isolation of the real sheet.
type MemoryRowStore struct {
	mu   sync.RWMutex
	rows map[string]*m_product.Data
}

// NewMemoryRowStore creates an empty MemoryRowStore.
func NewMemoryRowStore() *MemoryRowStore {
	return &MemoryRowStore{rows: make(map[string]*m_product.Data)}
}

var _ contracts.RowStore = (*MemoryRowStore)(nil)

// ctxErr reports a canceled context the same way the sheets store reports
// its failures, so callers see one error contract across implementations.
func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("canceled: %w", errors.Join(domain.ErrStoreUnavailable, err))
	}
	return nil
}

// ReadAll returns every record ordered by product_no.
func (s *MemoryRowStore) ReadAll(ctx context.Context) ([]*domain.Product, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.rows))
	for key := range s.rows {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	products := make([]*domain.Product, 0, len(keys))
	for _, key := range keys {
		product, err := dataToDomain(s.rows[key])
		if err != nil {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

// Get returns the record for productNo or domain.ErrRecordNotFound.
func (s *MemoryRowStore) Get(ctx context.Context, productNo string) (*domain.Product, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.rows[productNo]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return dataToDomain(data)
}

// Append adds a new record row.
func (s *MemoryRowStore) Append(ctx context.Context, product *domain.Product) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[product.ProductNo()]; exists {
		return domain.ErrDuplicateKey
	}
	s.rows[product.ProductNo()] = domainToData(product)
	return nil
}

// Replace overwrites the row matching the record's product_no.
func (s *MemoryRowStore) Replace(ctx context.Context, product *domain.Product) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[product.ProductNo()]; !exists {
		return domain.ErrRecordNotFound
	}
	s.rows[product.ProductNo()] = domainToData(product)
	return nil
}
