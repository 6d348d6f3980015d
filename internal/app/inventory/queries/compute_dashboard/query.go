package compute_dashboard

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/queries/list_products"
)

// Request is the closed reporting period.
type Request struct {
	From domain.Date
	To   domain.Date
}

// Query computes the profit/loss dashboard for a period. The computation
// itself is the pure domain.ComputeDashboard; this query only supplies the
// snapshot. Concurrent requests for the same period share one snapshot read
// via singleflight, since the result is read-committed either way.
type Query struct {
	list  *list_products.Query
	group singleflight.Group
}

// NewQuery creates a new dashboard query.
func NewQuery(list *list_products.Query) *Query {
	return &Query{list: list}
}

// Execute returns the dashboard view for [From, To] inclusive. An empty
// period or an empty collection yields zero totals, never an error.
func (q *Query) Execute(ctx context.Context, req *Request) (domain.DashboardView, error) {
	key := req.From.String() + ".." + req.To.String()

	v, err, _ := q.group.Do(key, func() (any, error) {
		snapshot, err := q.list.Snapshot(ctx, &list_products.Request{})
		if err != nil {
			return domain.DashboardView{}, err
		}
		return domain.ComputeDashboard(snapshot, req.From, req.To), nil
	})
	if err != nil {
		return domain.DashboardView{}, err
	}
	return v.(domain.DashboardView), nil
}
