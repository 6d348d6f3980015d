package list_channels

import (
	"context"
	"sort"
	"strings"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/contracts"
)

// Query lists the sales channels available for record entry: the configured
// catalog first, then any further channels already present in the
// collection. Used by UI dropdowns; the store itself treats channels as
// free text.
type Query struct {
	rows    contracts.RowStore
	catalog []string
}

// NewQuery creates a new channel listing query.
func NewQuery(rows contracts.RowStore, catalog []string) *Query {
	return &Query{rows: rows, catalog: catalog}
}

// Execute returns the distinct channel names, catalog order preserved and
// discovered channels appended alphabetically.
func (q *Query) Execute(ctx context.Context) ([]string, error) {
	channels := make([]string, 0, len(q.catalog))
	seen := make(map[string]struct{}, len(q.catalog))

	for _, ch := range q.catalog {
		ch = strings.TrimSpace(ch)
		if ch == "" {
			continue
		}
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		channels = append(channels, ch)
	}

	snapshot, err := q.rows.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	discovered := make([]string, 0)
	for _, p := range snapshot {
		ch := p.SalesChannel()
		if ch == "" || p.IsArchived() {
			continue
		}
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		discovered = append(discovered, ch)
	}
	sort.Strings(discovered)

	return append(channels, discovered...), nil
}
