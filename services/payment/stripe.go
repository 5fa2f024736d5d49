// Package payment wraps the Stripe card rail behind a small interface so the
// checkout flow can swap it for the wallet rail or a test double.
package payment

import (
	"math"
	"strings"
	"time"

	"tripmart/models"
	"tripmart/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentService creates card charges.
type PaymentService interface {
	// CreateIntent opens a Stripe PaymentIntent for the given amount and
	// returns the invoice carrying the client secret.
	CreateIntent(req models.PaymentIntentRequest) (*models.Invoice, error)
}

// StripePaymentService is the production card rail. stripe.Key is set once
// at startup from configuration.
type StripePaymentService struct {
	Logger *zap.Logger
}

func (s *StripePaymentService) CreateIntent(req models.PaymentIntentRequest) (*models.Invoice, error) {
	if req.Amount <= 0 {
		return nil, utils.NewError(utils.KindValidation, "amount must be positive")
	}
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(req.Amount)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("tourist_id", req.TouristID)
	if req.Reference != "" {
		params.AddMetadata("reference", req.Reference)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		s.Logger.Error("stripe payment intent failed",
			zap.String("tourist", req.TouristID),
			zap.Float64("amount", req.Amount),
			zap.Error(err))
		return nil, utils.WrapError(utils.KindInternal, "card payment could not be initiated", err)
	}

	now := time.Now()
	return &models.Invoice{
		InvoiceID:    uuid.New().String(),
		TouristID:    req.TouristID,
		Amount:       req.Amount,
		Currency:     currency,
		Method:       models.PaymentMethodCard,
		PaymentID:    pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// toMinorUnits converts a currency amount to the integer cents Stripe wants.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
