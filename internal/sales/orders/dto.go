package orders

import "time"

// OrderDraft is the full desired state of an order as submitted by the admin
// UI. Updates replace the entire line collection; lines are never patched
// individually.
type OrderDraft struct {
	OrderNumber  string           `json:"order_number"`
	CustomerID   int64            `json:"customer_id" validate:"required,gt=0"`
	OrderDate    time.Time        `json:"order_date" validate:"required"`
	DeliveryDate *time.Time       `json:"delivery_date,omitempty"`
	PaymentDate  *time.Time       `json:"payment_date,omitempty"`
	Status       SalesOrderStatus `json:"status"`
	ShippingAddr *string          `json:"shipping_addr,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	Lines        []LineDraft      `json:"lines" validate:"required,min=1,dive"`
}

// LineDraft is one line of an order draft.
type LineDraft struct {
	ItemID int64   `json:"item_id" validate:"required,gt=0"`
	Price  float64 `json:"price" validate:"gte=0"`
	Cost   float64 `json:"cost" validate:"gte=0"`
}

// ListOrdersRequest filters and pages the order listing.
type ListOrdersRequest struct {
	CustomerID *int64            `json:"customer_id,omitempty"`
	Status     *SalesOrderStatus `json:"status,omitempty"`
	Limit      int               `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int               `json:"offset" validate:"gte=0"`
}
