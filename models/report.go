package models

import "time"

// SalesLineItem is one monetarily realized transaction in a sales report.
type SalesLineItem struct {
	TransactionID string    `bson:"id" json:"transactionId"`
	ItemID        string    `bson:"item_id" json:"itemId"`
	ItemName      string    `bson:"item_name" json:"itemName"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	Gross         float64   `bson:"gross" json:"gross"`
	Status        string    `bson:"status" json:"status"`
	Date          time.Time `bson:"created_at" json:"date"`
}

// SalesSummary carries the running totals with the platform-fee split.
type SalesSummary struct {
	Gross       float64 `json:"gross"`
	PlatformFee float64 `json:"platformFee"`
	Net         float64 `json:"net"`
	Count       int     `json:"count"`
}

// ItemSales is the secondary group-by-item-name breakdown.
type ItemSales struct {
	ItemName string  `bson:"_id" json:"itemName"`
	Gross    float64 `bson:"gross" json:"gross"`
	Count    int64   `bson:"count" json:"count"`
}

// SalesReport is the full per-owner (or admin-wide) report.
type SalesReport struct {
	Lines   []SalesLineItem `json:"lines"`
	ByItem  []ItemSales     `json:"byItem"`
	Summary SalesSummary    `json:"summary"`
}
