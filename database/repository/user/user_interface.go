package userRepo

import (
	"time"

	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for user accounts, including
// the tourist wallet/loyalty writes that must land atomically.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
	// DeleteTouristCascade removes the account and soft-marks its bookings
	// `account_deleted` inside one transaction.
	DeleteTouristCascade(id string) error
	UpdateSetDocument(id string, updateDoc bson.M) error

	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByTokenHash(tokenHash string) (*models.User, error)
	GetAllByRole(role string) ([]models.User, error)

	// TouristsBornOn returns tourists whose birthday (month/day) matches the
	// given calendar day.
	TouristsBornOn(month time.Month, day int) ([]models.User, error)

	// DeductWithEarn atomically subtracts amount from the wallet, adds the
	// tier-derived earned points and recomputes the tier, in one document
	// write. Returns the updated user, or nil when the balance was
	// insufficient (or the tourist does not exist).
	DeductWithEarn(id string, amount float64) (*models.User, error)

	// Credit adds amount to the wallet with no loyalty side effect.
	Credit(id string, amount float64) error

	// RedeemPoints atomically converts points into wallet currency and
	// recomputes the tier. Returns nil when the points balance is
	// insufficient. The caller validates block sizing.
	RedeemPoints(id string, points int64, value float64) (*models.User, error)
}
