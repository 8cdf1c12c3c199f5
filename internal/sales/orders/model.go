package orders

import "time"

// SalesOrderStatus enumerates the order lifecycle states. Any status value
// may be written by an update; only the transitions into COMPLETED and
// CANCELLED carry inventory side effects.
type SalesOrderStatus string

const (
	SalesOrderStatusPending   SalesOrderStatus = "PENDING"
	SalesOrderStatusConfirmed SalesOrderStatus = "CONFIRMED"
	SalesOrderStatusPaid      SalesOrderStatus = "PAID"
	SalesOrderStatusShipped   SalesOrderStatus = "SHIPPED"
	SalesOrderStatusCompleted SalesOrderStatus = "COMPLETED"
	SalesOrderStatusCancelled SalesOrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s SalesOrderStatus) Valid() bool {
	switch s {
	case SalesOrderStatusPending, SalesOrderStatusConfirmed, SalesOrderStatusPaid,
		SalesOrderStatusShipped, SalesOrderStatusCompleted, SalesOrderStatusCancelled:
		return true
	}
	return false
}

// SalesOrder is one customer transaction.
type SalesOrder struct {
	ID           int64            `json:"id"`
	OrderNumber  string           `json:"order_number"`
	CustomerID   int64            `json:"customer_id"`
	OrderDate    time.Time        `json:"order_date"`
	DeliveryDate *time.Time       `json:"delivery_date,omitempty"`
	PaymentDate  *time.Time       `json:"payment_date,omitempty"`
	Status       SalesOrderStatus `json:"status"`
	ShippingAddr *string          `json:"shipping_addr,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	TotalAmount  float64          `json:"total_amount"`
	TotalCost    float64          `json:"total_cost"`
	GrossProfit  float64          `json:"gross_profit"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Lines        []SalesOrderLine `json:"lines,omitempty"`
}

// SalesOrderLine links one inventory item into an order. Price may differ
// from the item's catalog selling price and Cost is a snapshot of the item's
// landed cost when the order was saved.
type SalesOrderLine struct {
	ID           int64   `json:"id"`
	SalesOrderID int64   `json:"sales_order_id"`
	ItemID       int64   `json:"item_id"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`

	// Denormalized display fields, populated on reads.
	ItemSKUCode   string  `json:"item_sku_code,omitempty"`
	ItemName      string  `json:"item_name,omitempty"`
	ItemTotalCost float64 `json:"item_total_cost,omitempty"`
	ItemStatus    string  `json:"item_status,omitempty"`
}

// SalesOrderWithCustomer is a listing row with denormalized customer name
// and line count.
type SalesOrderWithCustomer struct {
	SalesOrder
	CustomerName string `json:"customer_name"`
	LineCount    int    `json:"line_count"`
}

// AvailableItem is an IN_STOCK inventory unit offered by the line-item
// picker. Callers editing an existing order must also surface items already
// attached to that order even when no longer IN_STOCK.
type AvailableItem struct {
	ID           int64    `json:"id"`
	SKUCode      string   `json:"sku_code"`
	Name         string   `json:"name"`
	SellingPrice *float64 `json:"selling_price,omitempty"`
	TotalCost    float64  `json:"total_cost"`
}

// DeletedOrder identifies an order removed by Delete.
type DeletedOrder struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"order_number"`
}
