package models

import "time"

// OrderStatus enumerates the product-order lifecycle.
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodWallet = "wallet"
	PaymentMethodCard   = "card"
)

// OrderItem is one product line inside an order. UnitPrice is captured at
// checkout time so later price edits don't rewrite history.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	SellerID  string  `bson:"seller_id" json:"sellerId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unitPrice"`
}

// Order is a tourist's product purchase.
type Order struct {
	ID            string      `bson:"id" json:"id"`
	TouristID     string      `bson:"tourist_id" json:"touristId"`
	Items         []OrderItem `bson:"items" json:"items"`
	Total         float64     `bson:"total" json:"total"`
	PromoCode     string      `bson:"promo_code,omitempty" json:"promoCode,omitempty"`
	Discount      float64     `bson:"discount" json:"discount"`
	Payable       float64     `bson:"payable" json:"payable"`
	PaymentMethod string      `bson:"payment_method" json:"paymentMethod"`
	PaymentID     string      `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	Status        OrderStatus `bson:"status" json:"status"`
	CreatedAt     time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `bson:"updated_at" json:"updatedAt"`
}
