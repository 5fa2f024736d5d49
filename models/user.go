package models

import "time"

// Roles a user document can carry. Wallet and loyalty fields are only
// meaningful for tourists; the other roles own catalog entries.
const (
	RoleTourist         = "tourist"
	RoleAdvertiser      = "advertiser"
	RoleSeller          = "seller"
	RoleTourGuide       = "tour_guide"
	RoleTourismGovernor = "tourism_governor"
	RoleAdmin           = "admin"
)

// Loyalty tier thresholds and earn multipliers. Tier is derived purely from
// the cumulative points balance.
const (
	TierTwoThreshold   = 100000
	TierThreeThreshold = 500000

	// Redemption: points convert in blocks of RedeemBlockPoints to
	// RedeemBlockValue currency units.
	RedeemBlockPoints = 10000
	RedeemBlockValue  = 100
)

// User represents any platform account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`

	// Tourist-only fields.
	DateOfBirth   time.Time `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	WalletBalance float64   `bson:"wallet_balance" json:"walletBalance"`
	LoyaltyPoints int64     `bson:"loyalty_points" json:"loyaltyPoints"`
	LoyaltyLevel  int       `bson:"loyalty_level" json:"loyaltyLevel"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// TierForPoints derives the loyalty tier from a cumulative points balance.
func TierForPoints(points int64) int {
	switch {
	case points >= TierThreeThreshold:
		return 3
	case points >= TierTwoThreshold:
		return 2
	default:
		return 1
	}
}

// EarnMultiplier returns the points-per-currency multiplier for a tier.
func EarnMultiplier(tier int) float64 {
	switch tier {
	case 3:
		return 1.5
	case 2:
		return 1.0
	default:
		return 0.5
	}
}
