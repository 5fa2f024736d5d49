package models

import "time"

// PaymentIntentRequest asks the payment service for a card charge.
type PaymentIntentRequest struct {
	TouristID string  `json:"touristId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Reference string  `json:"reference"`
}

// Invoice records the outcome of a payment attempt.
type Invoice struct {
	InvoiceID    string    `json:"invoiceId"`
	TouristID    string    `json:"touristId"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Method       string    `json:"method"`
	PaymentID    string    `json:"paymentId,omitempty"`
	ClientSecret string    `json:"clientSecret,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
