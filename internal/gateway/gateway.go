// Package gateway talks to the PayOS merchant API.
package gateway

import "context"

type Item struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

// PaymentData is the payload of a PayOS "create payment link" call.
type PaymentData struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Items       []Item `json:"items"`
	CancelURL   string `json:"cancelUrl"`
	ReturnURL   string `json:"returnUrl"`
	BuyerName   string `json:"buyerName,omitempty"`
	BuyerEmail  string `json:"buyerEmail,omitempty"`
	BuyerPhone  string `json:"buyerPhone,omitempty"`
	ExpiredAt   int64  `json:"expiredAt,omitempty"`
	Signature   string `json:"signature,omitempty"`
}

type PaymentLink struct {
	Bin           string `json:"bin"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
	OrderCode     int64  `json:"orderCode"`
	Currency      string `json:"currency"`
	PaymentLinkID string `json:"paymentLinkId"`
	Status        string `json:"status"`
	CheckoutURL   string `json:"checkoutUrl"`
	QRCode        string `json:"qrCode"`
}

type PaymentLinkCreator interface {
	CreatePaymentLink(ctx context.Context, data PaymentData) (*PaymentLink, error)
}

// APIError is a rejection reported by PayOS in the response envelope.
type APIError struct {
	Code string
	Desc string
}

func (e *APIError) Error() string {
	return e.Desc
}
