// Package order implements product checkout: pricing, promo application,
// payment by wallet or card, stock movement and cancellation with refund.
package order

import (
	"math"
	"time"

	catalogRepo "tripmart/database/repository/catalog"
	orderRepo "tripmart/database/repository/order"
	userRepo "tripmart/database/repository/user"
	"tripmart/models"
	"tripmart/services/notification"
	"tripmart/services/payment"
	"tripmart/services/promo"
	"tripmart/services/wallet"
	"tripmart/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutLine is one requested product line.
type CheckoutLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is a cart submission.
type CheckoutRequest struct {
	TouristID     string         `json:"-"`
	Items         []CheckoutLine `json:"items"`
	PromoCode     string         `json:"promoCode,omitempty"`
	PaymentMethod string         `json:"paymentMethod"`
}

// CheckoutResponse returns the order plus, for card payments, the invoice
// the client completes with Stripe.
type CheckoutResponse struct {
	Order   *models.Order   `json:"order"`
	Invoice *models.Invoice `json:"invoice,omitempty"`
}

// OrderService manages product orders.
type OrderService interface {
	Checkout(req CheckoutRequest) (*CheckoutResponse, error)
	GetByID(touristID, orderID string) (*models.Order, error)
	ListByTourist(touristID string) ([]models.Order, error)
	// Cancel refunds the payable to the wallet and restocks every line.
	Cancel(touristID, orderID string) (float64, error)
	// MarkDelivered moves a paid order to delivered.
	MarkDelivered(orderID string) error
}

// DefaultOrderService is the production OrderService.
type DefaultOrderService struct {
	Repo          orderRepo.OrderRepository
	Catalog       catalogRepo.CatalogRepository
	Users         userRepo.UserRepository
	Wallet        wallet.WalletService
	Promo         promo.PromoService
	Payment       payment.PaymentService
	Notifications notification.NotificationService
	Logger        *zap.Logger
}

// Checkout prices the cart from current catalog prices, applies the promo
// code, takes stock, then charges the chosen rail. Stock taken before a
// failed payment is put back.
func (s *DefaultOrderService) Checkout(req CheckoutRequest) (*CheckoutResponse, error) {
	if len(req.Items) == 0 {
		return nil, utils.NewError(utils.KindValidation, "cart is empty")
	}
	if req.PaymentMethod != models.PaymentMethodWallet && req.PaymentMethod != models.PaymentMethodCard {
		return nil, utils.NewError(utils.KindValidation, "payment method must be wallet or card")
	}

	tourist, err := s.Users.GetByID(req.TouristID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "checkout failed", err)
	}
	if tourist == nil {
		return nil, utils.NewError(utils.KindNotFound, "tourist not found")
	}

	lines, total, err := s.priceCart(req.Items)
	if err != nil {
		return nil, err
	}

	discount := 0.0
	if req.PromoCode != "" {
		v, err := s.Promo.Validate(req.PromoCode, tourist.ID, tourist.DateOfBirth.Month(), total)
		if err != nil {
			return nil, err
		}
		discount = v.DiscountAmount
	}
	payable := round2(total - discount)

	taken, err := s.takeStock(lines)
	if err != nil {
		s.releaseStock(taken)
		return nil, err
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		TouristID:     tourist.ID,
		Items:         lines,
		Total:         round2(total),
		PromoCode:     req.PromoCode,
		Discount:      round2(discount),
		Payable:       payable,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusPaid,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	var invoice *models.Invoice
	switch req.PaymentMethod {
	case models.PaymentMethodWallet:
		if _, err := s.Wallet.Deduct(tourist.ID, payable); err != nil {
			s.releaseStock(taken)
			return nil, err
		}
	case models.PaymentMethodCard:
		invoice, err = s.Payment.CreateIntent(models.PaymentIntentRequest{
			TouristID: tourist.ID,
			Amount:    payable,
			Reference: order.ID,
		})
		if err != nil {
			s.releaseStock(taken)
			return nil, err
		}
		order.PaymentID = invoice.PaymentID
	}

	if req.PromoCode != "" {
		if err := s.Promo.Consume(req.PromoCode); err != nil {
			// The pre-validated code was burned by a concurrent purchase.
			s.releaseStock(taken)
			if req.PaymentMethod == models.PaymentMethodWallet {
				if cerr := s.Wallet.Credit(tourist.ID, payable); cerr != nil {
					s.Logger.Error("refund after promo race failed",
						zap.String("tourist", tourist.ID), zap.Error(cerr))
				}
			}
			return nil, err
		}
	}

	if err := s.Repo.Create(order); err != nil {
		s.releaseStock(taken)
		return nil, utils.WrapError(utils.KindInternal, "failed to store order", err)
	}

	s.Logger.Info("order placed",
		zap.String("order", order.ID),
		zap.String("tourist", tourist.ID),
		zap.Float64("payable", payable),
		zap.String("method", req.PaymentMethod))
	return &CheckoutResponse{Order: order, Invoice: invoice}, nil
}

func (s *DefaultOrderService) GetByID(touristID, orderID string) (*models.Order, error) {
	o, err := s.Repo.GetByID(orderID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to fetch order", err)
	}
	if o == nil || o.TouristID != touristID {
		return nil, utils.NewError(utils.KindNotFound, "order not found")
	}
	return o, nil
}

func (s *DefaultOrderService) ListByTourist(touristID string) ([]models.Order, error) {
	out, err := s.Repo.ListByTourist(touristID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to list orders", err)
	}
	return out, nil
}

// Cancel runs the transactional cancel-restock-refund and returns the
// refunded amount. Only paid orders can be cancelled.
func (s *DefaultOrderService) Cancel(touristID, orderID string) (float64, error) {
	o, err := s.Repo.GetByID(orderID)
	if err != nil {
		return 0, utils.WrapError(utils.KindInternal, "failed to fetch order", err)
	}
	if o == nil || o.TouristID != touristID {
		return 0, utils.NewError(utils.KindNotFound, "order not found")
	}
	if o.Status != models.OrderStatusPaid {
		return 0, utils.NewError(utils.KindConflict, "only paid orders can be cancelled")
	}

	refund, err := s.Repo.CancelWithRefund(orderID)
	if err != nil {
		return 0, utils.WrapError(utils.KindInternal, "cancellation failed", err)
	}
	s.Logger.Info("order cancelled",
		zap.String("order", orderID), zap.Float64("refund", refund))
	return refund, nil
}

func (s *DefaultOrderService) MarkDelivered(orderID string) error {
	o, err := s.Repo.GetByID(orderID)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "failed to fetch order", err)
	}
	if o == nil {
		return utils.NewError(utils.KindNotFound, "order not found")
	}
	if o.Status != models.OrderStatusPaid {
		return utils.NewError(utils.KindConflict, "only paid orders can be delivered")
	}
	if err := s.Repo.UpdateStatus(orderID, models.OrderStatusDelivered); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to update order", err)
	}
	return nil
}

// priceCart resolves every product and prices the lines from the catalog.
func (s *DefaultOrderService) priceCart(items []CheckoutLine) ([]models.OrderItem, float64, error) {
	lines := make([]models.OrderItem, 0, len(items))
	var total float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, 0, utils.NewError(utils.KindValidation, "quantity must be positive")
		}
		p, err := s.Catalog.GetProduct(item.ProductID)
		if err != nil {
			return nil, 0, utils.WrapError(utils.KindInternal, "product lookup failed", err)
		}
		if p == nil || p.Archived {
			return nil, 0, utils.NewError(utils.KindNotFound, "product not found")
		}
		lines = append(lines, models.OrderItem{
			ProductID: p.ID,
			SellerID:  p.SellerID,
			Name:      p.Name,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
		})
		total += p.Price * float64(item.Quantity)
	}
	return lines, total, nil
}

// takeStock decrements each line and reports which lines were taken so a
// later failure can put them back. A line hitting zero stock notifies the
// seller.
func (s *DefaultOrderService) takeStock(lines []models.OrderItem) ([]models.OrderItem, error) {
	taken := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		remaining, err := s.Catalog.DecrementStock(line.ProductID, line.Quantity)
		if err != nil {
			return taken, utils.WrapError(utils.KindInternal, "stock update failed", err)
		}
		if remaining < 0 {
			return taken, utils.NewError(utils.KindConflict, "insufficient stock for "+line.Name)
		}
		taken = append(taken, line)
		if remaining == 0 {
			if nerr := s.Notifications.NotifyStockOut(line.SellerID, line.Name); nerr != nil {
				s.Logger.Warn("stock-out notification failed",
					zap.String("product", line.ProductID), zap.Error(nerr))
			}
		}
	}
	return taken, nil
}

func (s *DefaultOrderService) releaseStock(taken []models.OrderItem) {
	for _, line := range taken {
		if err := s.Catalog.IncrementStock(line.ProductID, line.Quantity); err != nil {
			s.Logger.Error("stock release failed",
				zap.String("product", line.ProductID), zap.Error(err))
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
