// Package shared holds pure calculation helpers used across sales modules.
package shared

// LineAmounts carries the two monetary figures stored on an order line. Cost
// is a snapshot of the item's landed cost at sale time; it is never
// recomputed from the live item record.
type LineAmounts struct {
	Price float64
	Cost  float64
}

// OrderTotals holds derived financial figures for a sales order.
type OrderTotals struct {
	TotalAmount float64
	TotalCost   float64
	GrossProfit float64
}

// CalculateOrderTotals sums price and cost across all lines. GrossProfit may
// be negative; a loss-making sale is a valid business state, not an error.
// An empty line set yields zero totals.
func CalculateOrderTotals(lines []LineAmounts) OrderTotals {
	var t OrderTotals
	for _, line := range lines {
		t.TotalAmount += line.Price
		t.TotalCost += line.Cost
	}
	t.GrossProfit = t.TotalAmount - t.TotalCost
	return t
}
