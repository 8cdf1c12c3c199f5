package customers

import "time"

// CustomerType classifies who is buying.
type CustomerType string

const (
	CustomerIndividual      CustomerType = "INDIVIDUAL"
	CustomerCommercialSpace CustomerType = "COMMERCIAL_SPACE"
	CustomerGallery         CustomerType = "GALLERY"
)

// Valid reports whether t is a known customer type.
func (t CustomerType) Valid() bool {
	switch t {
	case CustomerIndividual, CustomerCommercialSpace, CustomerGallery:
		return true
	}
	return false
}

// Sources lists the acquisition channels offered in the admin form.
var Sources = []string{"小红书", "微信", "朋友介绍", "线下到店", "展会", "其他"}

// Customer is a buyer, individual or trade.
type Customer struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Type       CustomerType `json:"type"`
	Phone      *string      `json:"phone,omitempty"`
	Wechat     *string      `json:"wechat,omitempty"`
	Email      *string      `json:"email,omitempty"`
	Address    *string      `json:"address,omitempty"`
	Source     *string      `json:"source,omitempty"`
	Notes      *string      `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	OrderCount int          `json:"order_count"`
	TotalSpent float64      `json:"total_spent"`
}

// OrderSummary is one past order shown on the customer detail page.
type OrderSummary struct {
	ID          int64     `json:"id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	OrderDate   time.Time `json:"order_date"`
	LineCount   int       `json:"line_count"`
}

// CustomerDetail is a customer with their order history.
type CustomerDetail struct {
	Customer
	Orders []OrderSummary `json:"orders"`
}

// CustomerDraft is the admin form payload.
type CustomerDraft struct {
	Name    string  `json:"name" validate:"required"`
	Type    *string `json:"type,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Wechat  *string `json:"wechat,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty"`
	Source  *string `json:"source,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// DeletedCustomer identifies a customer removed by Delete.
type DeletedCustomer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Option is a minimal customer reference for select inputs.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
