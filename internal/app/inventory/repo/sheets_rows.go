package repo

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/models/m_product"
)

// SheetsRowStore implements RowStore against a Google Sheets worksheet.
// Row 1 is the header; each record occupies one row below it. The sheet is
// shared and externally editable, so this store makes no freshness promises
// beyond what a read returns; conflict detection happens in the interactors
// via revision tokens.
type SheetsRowStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsRowStore opens the given spreadsheet. Credentials follow the
// usual google.golang.org/api resolution (service account JSON via
// GOOGLE_APPLICATION_CREDENTIALS, or explicit options).
func NewSheetsRowStore(ctx context.Context, spreadsheetID, sheetName string, opts ...option.ClientOption) (*SheetsRowStore, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return &SheetsRowStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

var _ contracts.RowStore = (*SheetsRowStore)(nil)

// EnsureHeader writes the canonical header row if row 1 is empty.
func (s *SheetsRowStore) EnsureHeader(ctx context.Context) error {
	headerRange := fmt.Sprintf("%s!A1:L1", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return storeErr("read header", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := make([]any, 0, m_product.NumColumns)
	for _, name := range m_product.HeaderRow() {
		header = append(header, name)
	}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, headerRange, &sheets.ValueRange{Values: [][]any{header}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return storeErr("write header", err)
	}
	return nil
}

// ReadAll returns every decodable record below the header row.
func (s *SheetsRowStore) ReadAll(ctx context.Context) ([]*domain.Product, error) {
	entries, err := s.readEntries(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(entries))
	for _, e := range entries {
		products = append(products, e.product)
	}
	return products, nil
}

// Get returns the record for productNo or domain.ErrRecordNotFound.
func (s *SheetsRowStore) Get(ctx context.Context, productNo string) (*domain.Product, error) {
	entries, err := s.readEntries(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.product.ProductNo() == productNo {
			return e.product, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

// Append adds the record as a new row at the bottom of the sheet.
func (s *SheetsRowStore) Append(ctx context.Context, product *domain.Product) error {
	vr := &sheets.ValueRange{Values: [][]any{domainToData(product).Row()}}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.dataRange(), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return storeErr("append row", err)
	}
	return nil
}

// Replace overwrites the full row whose product_no matches the record.
func (s *SheetsRowStore) Replace(ctx context.Context, product *domain.Product) error {
	entries, err := s.readEntries(ctx)
	if err != nil {
		return err
	}

	rowNum := 0
	for _, e := range entries {
		if e.product.ProductNo() == product.ProductNo() {
			rowNum = e.rowNum
			break
		}
	}
	if rowNum == 0 {
		return domain.ErrRecordNotFound
	}

	target := fmt.Sprintf("%s!A%d:L%d", s.sheetName, rowNum, rowNum)
	vr := &sheets.ValueRange{Values: [][]any{domainToData(product).Row()}}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, target, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return storeErr("update row", err)
	}
	return nil
}

type rowEntry struct {
	rowNum  int // 1-based sheet row number
	product *domain.Product
}

// readEntries reads the data range and decodes each row, remembering its
// sheet position for Replace. Malformed rows and rows without a key are
// skipped; a spreadsheet edited by hand is allowed to contain junk.
func (s *SheetsRowStore) readEntries(ctx context.Context) ([]rowEntry, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataRange()).Context(ctx).Do()
	if err != nil {
		return nil, storeErr("read rows", err)
	}

	entries := make([]rowEntry, 0, len(resp.Values))
	for i, row := range resp.Values {
		data, err := m_product.FromRow(row)
		if err != nil || data.ProductNo == "" {
			continue
		}
		product, err := dataToDomain(data)
		if err != nil {
			continue
		}
		entries = append(entries, rowEntry{rowNum: i + 2, product: product})
	}
	return entries, nil
}

func (s *SheetsRowStore) dataRange() string {
	return fmt.Sprintf("%s!A2:L", s.sheetName)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStoreUnavailable, err))
}
