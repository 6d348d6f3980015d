package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/audit"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
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
	httphandler "github.com/hayasaka-dev/resale-ledger/internal/transport/http"
)

// Params configures the dependency wiring. An empty SpreadsheetID selects
// the in-memory row store for local runs.
type Params struct {
	SpreadsheetID string
	SheetName     string
	Channels      []string
	Logger        *zap.Logger
}

// ServiceOptions holds all wired application dependencies.
type ServiceOptions struct {
	Rows    contracts.RowStore
	Handler *httphandler.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, p Params) (*ServiceOptions, error) {
	// 1. Persistence collaborator
	var rows contracts.RowStore
	if p.SpreadsheetID == "" {
		p.Logger.Info("no spreadsheet configured, using in-memory store")
		rows = repo.NewMemoryRowStore()
	} else {
		sheetStore, err := repo.NewSheetsRowStore(ctx, p.SpreadsheetID, p.SheetName)
		if err != nil {
			return nil, fmt.Errorf("open spreadsheet: %w", err)
		}
		if err := sheetStore.EnsureHeader(ctx); err != nil {
			return nil, fmt.Errorf("prepare sheet: %w", err)
		}
		rows = sheetStore
	}

	// 2. Infrastructure components
	clk := clock.NewRealClock()
	locks := keylock.New()
	sink := audit.NewZapSink(p.Logger)

	// 3. Command use cases (write path, per-key serialized)
	createUseCase := create_product.NewInteractor(rows, sink, locks, clk)
	updateUseCase := update_product.NewInteractor(rows, sink, locks, clk)
	archiveUseCase := archive_product.NewInteractor(rows, sink, locks, clk)

	// 4. Query use cases (snapshot reads, never block writers)
	getQuery := get_product.NewQuery(rows)
	listQuery := list_products.NewQuery(rows)
	dashboardQuery := compute_dashboard.NewQuery(listQuery)
	channelsQuery := list_channels.NewQuery(rows, p.Channels)

	// 5. HTTP handler
	handler := httphandler.NewHandler(
		createUseCase,
		updateUseCase,
		archiveUseCase,
		getQuery,
		listQuery,
		dashboardQuery,
		channelsQuery,
		p.Logger,
	)

	return &ServiceOptions{
		Rows:    rows,
		Handler: handler,
	}, nil
}
