package storefront

// PublicItem is the storefront projection of an inventory item. Cost
// fields never leave the admin side.
type PublicItem struct {
	ID             int64         `json:"id"`
	Slug           string        `json:"slug"`
	Name           string        `json:"name"`
	SKUCode        string        `json:"sku_code"`
	DesignerSeries *string       `json:"designer_series,omitempty"`
	Recommendation *string       `json:"recommendation,omitempty"`
	Manufacturer   *string       `json:"manufacturer,omitempty"`
	Era            *string       `json:"era,omitempty"`
	Material       *string       `json:"material,omitempty"`
	Dimensions     *string       `json:"dimensions,omitempty"`
	ConditionGrade *string       `json:"condition_grade,omitempty"`
	SellingPrice   *float64      `json:"selling_price,omitempty"`
	Status         string        `json:"status"`
	StatusLabel    string        `json:"status_label"`
	Category       *string       `json:"category,omitempty"`
	ProductName    *string       `json:"product_name,omitempty"`
	Images         []PublicImage `json:"images"`
}

// PublicImage is one storefront photo.
type PublicImage struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

// PublicProduct is a featured catalog entry on the landing page.
type PublicProduct struct {
	ID          int64         `json:"id"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Designer    *string       `json:"designer,omitempty"`
	Description *string       `json:"description,omitempty"`
	Images      []PublicImage `json:"images"`
}

// ListFilter narrows the public item listing.
type ListFilter struct {
	Category       string
	DesignerSeries string
}
