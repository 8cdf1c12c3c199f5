package items

import "time"

// ItemStatus tracks where a physical inventory unit stands. SOLD and the
// return to IN_STOCK are owned by the order lifecycle manager; IN_TRANSIT
// and RESERVED are set manually from the back office.
type ItemStatus string

const (
	StatusInStock   ItemStatus = "IN_STOCK"
	StatusInTransit ItemStatus = "IN_TRANSIT"
	StatusReserved  ItemStatus = "RESERVED"
	StatusSold      ItemStatus = "SOLD"
)

// Valid reports whether s is a known item status.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusInTransit, StatusReserved, StatusSold:
		return true
	}
	return false
}

// Item is one unique physical inventory unit. Gallery stock is vintage:
// every unit is one-of-a-kind, so there is no quantity column anywhere.
type Item struct {
	ID             int64      `json:"id"`
	SKUCode        string     `json:"sku_code"`
	Slug           string     `json:"slug"`
	Name           string     `json:"name"`
	NameEn         *string    `json:"name_en,omitempty"`
	Recommendation *string    `json:"recommendation,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	ProductID      *int64     `json:"product_id,omitempty"`
	SupplierID     *int64     `json:"supplier_id,omitempty"`
	DesignerSeries *string    `json:"designer_series,omitempty"`
	Manufacturer   *string    `json:"manufacturer,omitempty"`
	Era            *string    `json:"era,omitempty"`
	Material       *string    `json:"material,omitempty"`
	Dimensions     *string    `json:"dimensions,omitempty"`
	ConditionGrade *string    `json:"condition_grade,omitempty"`
	ListPrice      *float64   `json:"list_price,omitempty"`
	SellingPrice   *float64   `json:"selling_price,omitempty"`
	ShippingCostUsd  *float64 `json:"shipping_cost_usd,omitempty"`
	ShippingCostRmb  *float64 `json:"shipping_cost_rmb,omitempty"`
	CustomsFees      *float64 `json:"customs_fees,omitempty"`
	ImportDuties     *float64 `json:"import_duties,omitempty"`
	PurchasePriceUsd *float64 `json:"purchase_price_usd,omitempty"`
	PurchasePriceRmb *float64 `json:"purchase_price_rmb,omitempty"`
	TotalCost      float64    `json:"total_cost"`
	Status         ItemStatus `json:"status"`
	ShowOnWebsite  bool       `json:"show_on_website"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Images         []Image    `json:"images,omitempty"`
}

// Image is one photo attached to an item.
type Image struct {
	ID        int64  `json:"id"`
	ItemID    int64  `json:"item_id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

// ItemWithRefs is a listing row with denormalized display names.
type ItemWithRefs struct {
	Item
	ProductName  *string `json:"product_name,omitempty"`
	SupplierName *string `json:"supplier_name,omitempty"`
}

// Option is a reference entry for form pickers.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
