package domain

// UnspecifiedChannel is the bucket for sold records without a sales channel.
const UnspecifiedChannel = "unspecified"

// DashboardView is the derived profit/loss report for a period.
// It is a transient value recomputed on demand, never persisted.
type DashboardView struct {
	PeriodFrom     Date             `json:"period_from"`
	PeriodTo       Date             `json:"period_to"`
	TotalSales     int64            `json:"total_sales"`
	TotalPurchase  int64            `json:"total_purchase"`
	TotalProfit    int64            `json:"total_profit"`
	SalesByChannel map[string]int64 `json:"sales_by_channel"`
}

// ComputeDashboard aggregates a record snapshot over the closed date range
// [from, to]. It is a pure function of its inputs: identical snapshot and
// period always yield an identical view.
//
// Sales and purchases are filtered independently: a record sold in range
// contributes its sale_price to total_sales and its channel bucket, a record
// purchased in range contributes its purchase_price to total_purchase, and
// total_profit is the simple net of the two sums. An empty snapshot or an
// empty period yields zero totals and an empty channel mapping.
func ComputeDashboard(snapshot []*Product, from, to Date) DashboardView {
	view := DashboardView{
		PeriodFrom:     from,
		PeriodTo:       to,
		SalesByChannel: make(map[string]int64),
	}

	for _, p := range snapshot {
		if p == nil || p.IsArchived() {
			continue
		}

		if !p.PurchaseDate().IsZero() && p.PurchaseDate().Between(from, to) {
			view.TotalPurchase += p.PurchasePrice()
		}

		if p.SaleStatus() != StatusSold {
			continue
		}
		salePrice := p.SalePrice()
		if salePrice == nil || p.SaleDate().IsZero() || !p.SaleDate().Between(from, to) {
			continue
		}

		view.TotalSales += *salePrice
		channel := p.SalesChannel()
		if channel == "" {
			channel = UnspecifiedChannel
		}
		view.SalesByChannel[channel] += *salePrice
	}

	view.TotalProfit = view.TotalSales - view.TotalPurchase
	return view
}
