// Package wallet implements the tourist wallet and loyalty-points
// operations. All balance math happens in one atomic repository write; the
// service only validates and interprets the result.
package wallet

import (
	"fmt"

	userRepo "tripmart/database/repository/user"
	"tripmart/models"
	"tripmart/utils"

	"go.uber.org/zap"
)

// WalletService exposes deduct/credit/redeem on a tourist's wallet.
type WalletService interface {
	Deduct(touristID string, amount float64) (*models.User, error)
	Credit(touristID string, amount float64) error
	Redeem(touristID string, points int64) (*models.User, error)
}

// DefaultWalletService is the production WalletService.
type DefaultWalletService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

// Deduct subtracts amount, credits the tier-derived earned points and
// recomputes the tier. Refuses on insufficient balance.
func (s *DefaultWalletService) Deduct(touristID string, amount float64) (*models.User, error) {
	if amount <= 0 {
		return nil, utils.NewError(utils.KindValidation, "deduction amount must be positive")
	}

	user, err := s.Repo.DeductWithEarn(touristID, amount)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "wallet deduction failed", err)
	}
	if user == nil {
		// Distinguish a missing tourist from a short balance.
		existing, err := s.Repo.GetByID(touristID)
		if err != nil {
			return nil, utils.WrapError(utils.KindInternal, "wallet deduction failed", err)
		}
		if existing == nil || existing.Role != models.RoleTourist {
			return nil, utils.NewError(utils.KindNotFound, "tourist not found")
		}
		return nil, utils.NewError(utils.KindValidation, "insufficient wallet balance")
	}

	s.Logger.Info("wallet deducted",
		zap.String("tourist", touristID),
		zap.Float64("amount", amount),
		zap.Int64("points", user.LoyaltyPoints),
		zap.Int("tier", user.LoyaltyLevel))
	return user, nil
}

// Credit adds amount to the wallet with no loyalty side effect.
func (s *DefaultWalletService) Credit(touristID string, amount float64) error {
	if amount <= 0 {
		return utils.NewError(utils.KindValidation, "credit amount must be positive")
	}
	if err := s.Repo.Credit(touristID, amount); err != nil {
		return utils.WrapError(utils.KindInternal, "wallet credit failed", err)
	}
	return nil
}

// Redeem converts points to wallet currency in blocks of 10000.
func (s *DefaultWalletService) Redeem(touristID string, points int64) (*models.User, error) {
	if points < models.RedeemBlockPoints || points%models.RedeemBlockPoints != 0 {
		return nil, utils.NewError(utils.KindValidation,
			fmt.Sprintf("points must be redeemed in multiples of %d", models.RedeemBlockPoints))
	}

	value := float64(points/models.RedeemBlockPoints) * models.RedeemBlockValue
	user, err := s.Repo.RedeemPoints(touristID, points, value)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "points redemption failed", err)
	}
	if user == nil {
		existing, err := s.Repo.GetByID(touristID)
		if err != nil {
			return nil, utils.WrapError(utils.KindInternal, "points redemption failed", err)
		}
		if existing == nil || existing.Role != models.RoleTourist {
			return nil, utils.NewError(utils.KindNotFound, "tourist not found")
		}
		return nil, utils.NewError(utils.KindValidation, "insufficient points balance")
	}

	s.Logger.Info("points redeemed",
		zap.String("tourist", touristID),
		zap.Int64("points", points),
		zap.Float64("value", value))
	return user, nil
}
