package types

import "github.com/cometcontrol/comet-backend/pkg/enums"

// Price is an optional product price. Absent entirely when the product is
// quote-only.
type Price struct {
	Amount           float64        `json:"amount" validate:"min=0"`
	Currency         enums.Currency `json:"currency" validate:"required,oneof=TRY USD EUR"`
	DiscountedAmount *float64       `json:"discountedAmount,omitempty"`
}

// CartItem is one line in the quote cart. Identity fields are immutable
// snapshots taken when the product was added; quantity and notes are the only
// mutable fields.
type CartItem struct {
	ProductID    string          `json:"productId" validate:"required"`
	ProductSlug  string          `json:"productSlug,omitempty"`
	ProductSKU   string          `json:"productSku" validate:"required"`
	ProductName  LocalizedString `json:"productName"`
	ProductImage string          `json:"productImage,omitempty"`
	UnitPrice    *Price          `json:"unitPrice,omitempty"`
	Quantity     int             `json:"quantity" validate:"required,min=1,max=9999"`
	Notes        string          `json:"notes" validate:"max=500"`
}

// QuoteContact carries the company and contact details on a quote request.
type QuoteContact struct {
	CompanyName            string              `json:"companyName" validate:"required,min=2,max=200"`
	ContactPerson          string              `json:"contactPerson" validate:"required,min=2,max=100"`
	Email                  string              `json:"email" validate:"required,email"`
	Phone                  string              `json:"phone" validate:"required,min=7,max=20"`
	Position               string              `json:"position,omitempty"`
	ProjectDescription     string              `json:"projectDescription" validate:"required,min=10,max=5000"`
	PreferredContactMethod enums.ContactMethod `json:"preferredContactMethod" validate:"required,oneof=email phone"`
	Deadline               string              `json:"deadline,omitempty"`
}

// QuoteRequest is the POST /quote payload: cart contents plus contact fields.
type QuoteRequest struct {
	Contact QuoteContact `json:"contact" validate:"required"`
	Items   []CartItem   `json:"items" validate:"required,min=1,max=100,dive"`
}

// ContactMessage is the POST /contact payload, independent of the cart.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=5,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}
