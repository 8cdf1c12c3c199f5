package suppliers

import "time"

// SupplierStatus tracks whether a sourcing channel is usable.
type SupplierStatus string

const (
	SupplierActive   SupplierStatus = "ACTIVE"
	SupplierInactive SupplierStatus = "INACTIVE"
	SupplierPaused   SupplierStatus = "PAUSED"
)

// Valid reports whether s is a known supplier status.
func (s SupplierStatus) Valid() bool {
	switch s {
	case SupplierActive, SupplierInactive, SupplierPaused:
		return true
	}
	return false
}

// Supplier is a sourcing channel for inventory items.
type Supplier struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Country     *string        `json:"country,omitempty"`
	City        *string        `json:"city,omitempty"`
	ContactName *string        `json:"contact_name,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Wechat      *string        `json:"wechat,omitempty"`
	Specialty   *string        `json:"specialty,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
	Status      SupplierStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ItemCount   int            `json:"item_count"`
}

// SupplierDraft is the admin form payload.
type SupplierDraft struct {
	Name        string  `json:"name" validate:"required"`
	Country     *string `json:"country,omitempty"`
	City        *string `json:"city,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Wechat      *string `json:"wechat,omitempty"`
	Specialty   *string `json:"specialty,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// DeletedSupplier identifies a supplier removed by Delete.
type DeletedSupplier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Option is a minimal supplier reference for select inputs.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
