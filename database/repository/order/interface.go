package orderRepo

import "tripmart/models"

// OrderRepository persists product orders and the seller sales pipelines.
type OrderRepository interface {
	Create(o *models.Order) error
	GetByID(id string) (*models.Order, error)
	ListByTourist(touristID string) ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error

	// CancelWithRefund marks the order cancelled, restocks every line and
	// refunds the wallet, all inside one transaction. Returns the refunded
	// amount.
	CancelWithRefund(id string) (float64, error)

	// SellerSales lists realized (paid/delivered) order lines for a seller.
	SellerSales(sellerID string) ([]models.SalesLineItem, error)
	SellerSalesByItemName(sellerID string) ([]models.ItemSales, error)
	AllSales() ([]models.SalesLineItem, error)
}
