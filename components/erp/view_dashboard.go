package erp

import "github.com/shopspring/decimal"

const topProductCount = 6

// DashboardSummary holds the headline aggregates shown on the dashboard cards.
type DashboardSummary struct {
	TotalRevenue   int64           `json:"total_revenue"`
	TotalOrders    int64           `json:"total_orders"`
	AverageOrder   decimal.Decimal `json:"average_order"`
	InventoryValue int64           `json:"inventory_value"`
}

// DashboardView is read-only. It is built over the static sales series and the
// generated inventory sample, never over inventory view edits.
type DashboardView struct {
	sales     []MonthlySales
	inventory []InventoryItem
}

func newDashboardView(sales []MonthlySales, inventory []InventoryItem) *DashboardView {
	return &DashboardView{
		sales:     append([]MonthlySales(nil), sales...),
		inventory: cloneInventory(inventory),
	}
}

// Summary computes the dashboard aggregates.
func (d *DashboardView) Summary() DashboardSummary {
	var summary DashboardSummary
	for _, month := range d.sales {
		summary.TotalRevenue += month.Revenue
		summary.TotalOrders += month.Orders
	}
	summary.AverageOrder = averageOrder(summary.TotalRevenue, summary.TotalOrders)
	summary.InventoryValue = InventoryValue(d.inventory)
	return summary
}

// Sales returns the monthly series in display order.
func (d *DashboardView) Sales() []MonthlySales {
	return append([]MonthlySales(nil), d.sales...)
}

// TopProducts returns the first six inventory items in their original order.
func (d *DashboardView) TopProducts() []InventoryItem {
	n := min(topProductCount, len(d.inventory))
	return cloneInventory(d.inventory[:n])
}

// InventoryValue returns floor(sum(quantity * unit price)).
func InventoryValue(items []InventoryItem) int64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Value())
	}
	return total.Floor().IntPart()
}

func averageOrder(revenue, orders int64) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(revenue).DivRound(decimal.NewFromInt(orders), 2)
}
