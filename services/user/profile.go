package user

import (
	"time"

	"tripmart/models"
	"tripmart/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Fields a user may edit on their own profile. Wallet and loyalty state is
// only ever written by the wallet repo.
var editableFields = map[string]bool{
	"email":    true,
	"username": true,
}

func (s *DefaultUserService) GetProfile(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to fetch profile", err)
	}
	if u == nil {
		return nil, utils.NewError(utils.KindNotFound, "user not found")
	}
	return u, nil
}

func (s *DefaultUserService) UpdateProfile(userID string, updates map[string]interface{}) (*models.User, error) {
	doc := bson.M{}
	for k, v := range updates {
		if editableFields[k] {
			doc[k] = v
		}
	}
	if len(doc) == 0 {
		return nil, utils.NewError(utils.KindValidation, "no editable fields in update")
	}
	doc["updated_at"] = time.Now()

	if err := s.Repo.UpdateSetDocument(userID, doc); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to update profile", err)
	}
	return s.GetProfile(userID)
}

// DeleteAccount removes the account. Tourist deletions run as a cascade
// that soft-marks the tourist's bookings instead of orphaning them.
func (s *DefaultUserService) DeleteAccount(userID string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "failed to fetch user", err)
	}
	if u == nil {
		return utils.NewError(utils.KindNotFound, "user not found")
	}

	if u.Role == models.RoleTourist {
		err = s.Repo.DeleteTouristCascade(userID)
	} else {
		err = s.Repo.Delete(userID)
	}
	if err != nil {
		return utils.WrapError(utils.KindInternal, "failed to delete account", err)
	}

	s.Logger.Info("account deleted", zap.String("user", userID), zap.String("role", u.Role))
	return nil
}

func (s *DefaultUserService) ListByRole(role string) ([]models.User, error) {
	users, err := s.Repo.GetAllByRole(role)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to list users", err)
	}
	return users, nil
}
