package domain

import "time"

const (
	DefaultItemName    = "Item Name"
	DefaultQuantity    = int64(1)
	DefaultPrice       = int64(2000)
	DefaultDescription = "Order description"
	DefaultBuyerName   = "Nguyen Van A"
	DefaultBuyerEmail  = "nguyenvana@example.com"
	DefaultBuyerPhone  = "0123456789"

	// LinkLifetime is how long a created payment link stays payable.
	LinkLifetime = 600 * time.Second
)

// LineItem prices are in minor currency units.
type LineItem struct {
	Name     string `json:"name" validate:"required"`
	Quantity int64  `json:"quantity" validate:"gt=0"`
	Price    int64  `json:"price" validate:"gte=0"`
}

type PaymentRequest struct {
	Description string     `json:"description"`
	Items       []LineItem `json:"items" validate:"dive"`
	BuyerName   string     `json:"buyer_name"`
	BuyerEmail  string     `json:"buyer_email"`
	BuyerPhone  string     `json:"buyer_phone"`
}

// Order is derived from a PaymentRequest for a single link creation and never stored.
type Order struct {
	OrderCode   int64
	TotalAmount int64
	CreatedAt   time.Time
	ExpiredAt   time.Time
}

type CheckoutResult struct {
	CheckoutURL string `json:"checkoutUrl"`
}
