// Package promo implements promo-code validation, consumption and the
// birthday-code generation used by the hourly sweep.
package promo

import (
	"fmt"
	"math"
	"strings"
	"time"

	promoRepo "tripmart/database/repository/promo"
	"tripmart/models"
	"tripmart/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Birthday codes give a fixed 20% off and stay valid for 30 days.
const (
	birthdayDiscountPercent = 20
	birthdayCodeValidity    = 30 * 24 * time.Hour
)

// PromoService validates, consumes and mints promo codes.
type PromoService interface {
	// Validate runs the applicability chain and computes the discount.
	// It never mutates the usage counter.
	Validate(code, userID string, birthMonth time.Month, amount float64) (*models.PromoValidation, error)
	// Consume burns one usage at purchase time.
	Consume(code string) error
	// IssueBirthdayCode mints a user-scoped birthday code unless the user
	// already holds an unexpired one. Returns nil when skipped.
	IssueBirthdayCode(userID string) (*models.PromoCode, error)
	Create(p *models.PromoCode) error
}

// DefaultPromoService is the production PromoService.
type DefaultPromoService struct {
	Repo   promoRepo.PromoRepository
	Logger *zap.Logger
}

// Validate checks, in order: exists, active, unexpired, under its usage
// limit and, for birthday codes, owner and calendar-month match.
func (s *DefaultPromoService) Validate(code, userID string, birthMonth time.Month, amount float64) (*models.PromoValidation, error) {
	if amount <= 0 {
		return nil, utils.NewError(utils.KindValidation, "amount must be positive")
	}

	p, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "promo lookup failed", err)
	}
	if p == nil {
		return nil, utils.NewError(utils.KindNotFound, "promo code not found")
	}
	if !p.Active {
		return nil, utils.NewError(utils.KindValidation, "promo code is not active")
	}
	if time.Now().After(p.ExpiresAt) {
		return nil, utils.NewError(utils.KindValidation, "promo code has expired")
	}
	if p.UsedCount >= p.UsageLimit {
		return nil, utils.NewError(utils.KindValidation, "promo code usage limit reached")
	}
	if p.Type == models.PromoTypeBirthday {
		if p.OwnerID != userID {
			return nil, utils.NewError(utils.KindForbidden, "this promo code belongs to another user")
		}
		if time.Now().Month() != birthMonth {
			return nil, utils.NewError(utils.KindValidation, "birthday promo codes are only valid during your birth month")
		}
	}

	discount := math.Round(amount*p.DiscountPC) / 100
	return &models.PromoValidation{
		Code:            p.Code,
		DiscountPercent: p.DiscountPC,
		DiscountAmount:  discount,
		FinalAmount:     amount - discount,
	}, nil
}

// Consume burns one usage atomically; refusal means the code raced to its
// limit or expired since validation.
func (s *DefaultPromoService) Consume(code string) error {
	ok, err := s.Repo.Consume(code)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "promo consumption failed", err)
	}
	if !ok {
		return utils.NewError(utils.KindValidation, "promo code is no longer usable")
	}
	return nil
}

// IssueBirthdayCode mints a birthday code for the user unless an unexpired
// one already exists, which keeps the hourly sweep idempotent.
func (s *DefaultPromoService) IssueBirthdayCode(userID string) (*models.PromoCode, error) {
	exists, err := s.Repo.HasActiveBirthdayCode(userID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "birthday code check failed", err)
	}
	if exists {
		return nil, nil
	}

	p := &models.PromoCode{
		ID:         uuid.New().String(),
		Code:       newBirthdayCode(),
		Type:       models.PromoTypeBirthday,
		DiscountPC: birthdayDiscountPercent,
		ExpiresAt:  time.Now().Add(birthdayCodeValidity),
		UsageLimit: 1,
		Active:     true,
		OwnerID:    userID,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to create birthday code", err)
	}

	s.Logger.Info("birthday promo issued", zap.String("user", userID), zap.String("code", p.Code))
	return p, nil
}

// Create inserts an admin-defined regular code.
func (s *DefaultPromoService) Create(p *models.PromoCode) error {
	if p.Code == "" || p.DiscountPC <= 0 || p.DiscountPC > 100 || p.UsageLimit <= 0 {
		return utils.NewError(utils.KindValidation, "promo code needs a code, a 1-100 discount percent and a positive usage limit")
	}
	p.ID = uuid.New().String()
	p.Code = strings.ToUpper(p.Code)
	if p.Type == "" {
		p.Type = models.PromoTypeRegular
	}
	p.Active = true
	if err := s.Repo.Create(p); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to create promo code", err)
	}
	return nil
}

func newBirthdayCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("BDAY-%s", suffix)
}
