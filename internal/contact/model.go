package contact

import "time"

// InquiryStatus tracks staff follow-up on a storefront inquiry.
type InquiryStatus string

const (
	InquiryNew     InquiryStatus = "NEW"
	InquiryHandled InquiryStatus = "HANDLED"
	InquiryClosed  InquiryStatus = "CLOSED"
)

// Valid reports whether s is a known inquiry status.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryHandled, InquiryClosed:
		return true
	}
	return false
}

// Inquiry is a message submitted through the public contact form.
type Inquiry struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Contact   string        `json:"contact"`
	Message   string        `json:"message"`
	ItemSlug  *string       `json:"item_slug,omitempty"`
	Status    InquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// InquiryDraft is the public form payload.
type InquiryDraft struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Contact  string  `json:"contact" validate:"required,max=200"`
	Message  string  `json:"message" validate:"required,max=2000"`
	ItemSlug *string `json:"item_slug,omitempty" validate:"omitempty,max=200"`
}
