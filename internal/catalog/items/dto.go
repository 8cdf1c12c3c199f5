package items

// ItemDraft is the admin form payload for creating or updating an item.
// SKU code and slug are always derived server-side, never submitted.
type ItemDraft struct {
	Name           string   `json:"name" validate:"required"`
	NameEn         *string  `json:"name_en,omitempty"`
	Recommendation *string  `json:"recommendation,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	ProductID      *int64   `json:"product_id,omitempty" validate:"omitempty,gt=0"`
	SupplierID     *int64   `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	DesignerSeries *string  `json:"designer_series,omitempty"`
	Manufacturer   *string  `json:"manufacturer,omitempty"`
	Era            *string  `json:"era,omitempty"`
	Material       *string  `json:"material,omitempty"`
	Dimensions     *string  `json:"dimensions,omitempty"`
	ConditionGrade *string  `json:"condition_grade,omitempty"`
	ListPrice      *float64 `json:"list_price,omitempty" validate:"omitempty,gte=0"`
	SellingPrice   *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	ShippingCostUsd  *float64 `json:"shipping_cost_usd,omitempty" validate:"omitempty,gte=0"`
	ShippingCostRmb  *float64 `json:"shipping_cost_rmb,omitempty" validate:"omitempty,gte=0"`
	CustomsFees      *float64 `json:"customs_fees,omitempty" validate:"omitempty,gte=0"`
	ImportDuties     *float64 `json:"import_duties,omitempty" validate:"omitempty,gte=0"`
	PurchasePriceUsd *float64 `json:"purchase_price_usd,omitempty" validate:"omitempty,gte=0"`
	PurchasePriceRmb *float64 `json:"purchase_price_rmb,omitempty" validate:"omitempty,gte=0"`
	Status         ItemStatus   `json:"status,omitempty"`
	ShowOnWebsite  bool         `json:"show_on_website"`
	Images         []ImageDraft `json:"images,omitempty" validate:"omitempty,dive"`
}

// ImageDraft is one image in a draft. The collection is replaced wholesale
// on update, mirroring how order lines are handled.
type ImageDraft struct {
	URL       string `json:"url" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

// ListItemsRequest filters the inventory listing.
type ListItemsRequest struct {
	Status   *ItemStatus `json:"status,omitempty"`
	Designer *string     `json:"designer,omitempty"`
	Category *string     `json:"category,omitempty"`
	Query    *string     `json:"q,omitempty"`
	Limit    int         `json:"limit" validate:"gte=0,lte=1000"`
}

// DeletedItem identifies an item removed by Delete.
type DeletedItem struct {
	ID      int64  `json:"id"`
	SKUCode string `json:"sku_code"`
	Name    string `json:"name"`
}
