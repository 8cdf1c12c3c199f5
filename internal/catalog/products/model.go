package products

import "time"

// Categories lists the product categories used across the catalog.
var Categories = []string{"椅子", "桌子", "沙发", "收纳", "灯具", "屏风", "凳子", "其他"}

// Product is a catalog template that inventory items can reference. It
// carries the bilingual marketing copy; the physical units live in items.
type Product struct {
	ID              int64     `json:"id"`
	Slug            string    `json:"slug"`
	NameZh          string    `json:"name_zh"`
	NameEn          string    `json:"name_en"`
	Category        string    `json:"category"`
	Subcategory     *string   `json:"subcategory,omitempty"`
	Model           *string   `json:"model,omitempty"`
	DescriptionZh   *string   `json:"description_zh,omitempty"`
	DescriptionEn   *string   `json:"description_en,omitempty"`
	Designer        *string   `json:"designer,omitempty"`
	DesignerSeries  *string   `json:"designer_series,omitempty"`
	PriceRangeLow   *float64  `json:"price_range_low,omitempty"`
	PriceRangeHigh  *float64  `json:"price_range_high,omitempty"`
	CollectionValue *string   `json:"collection_value,omitempty"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Images          []Image   `json:"images,omitempty"`
	ItemCount       int       `json:"item_count"`
}

// Image is one photo attached to a product.
type Image struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

// ProductDraft is the admin form payload.
type ProductDraft struct {
	NameZh          string       `json:"name_zh" validate:"required"`
	NameEn          string       `json:"name_en" validate:"required"`
	Category        string       `json:"category" validate:"required"`
	Subcategory     *string      `json:"subcategory,omitempty"`
	Model           *string      `json:"model,omitempty"`
	DescriptionZh   *string      `json:"description_zh,omitempty"`
	DescriptionEn   *string      `json:"description_en,omitempty"`
	Designer        *string      `json:"designer,omitempty"`
	DesignerSeries  *string      `json:"designer_series,omitempty"`
	PriceRangeLow   *float64     `json:"price_range_low,omitempty" validate:"omitempty,gte=0"`
	PriceRangeHigh  *float64     `json:"price_range_high,omitempty" validate:"omitempty,gte=0"`
	CollectionValue *string      `json:"collection_value,omitempty"`
	Featured        bool         `json:"featured"`
	Images          []ImageDraft `json:"images,omitempty" validate:"omitempty,dive"`
}

// ImageDraft is one image in a draft; the collection is replaced wholesale.
type ImageDraft struct {
	URL       string `json:"url" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

// DeletedProduct identifies a product removed by Delete.
type DeletedProduct struct {
	ID     int64  `json:"id"`
	NameZh string `json:"name_zh"`
	NameEn string `json:"name_en"`
}
