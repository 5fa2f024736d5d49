// Package user manages accounts: registration, sessions and profiles.
package user

import (
	"regexp"
	"strings"
	"time"

	userRepo "tripmart/database/repository/user"
	"tripmart/models"
	"tripmart/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Session tokens live for a week; logging in again rotates the stored hash,
// which invalidates the previous session.
const tokenTTL = 7 * 24 * time.Hour

const dobLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Roles a user may self-register as. Governors and admins are provisioned
// by an admin.
var selfServeRoles = map[string]bool{
	models.RoleTourist:    true,
	models.RoleAdvertiser: true,
	models.RoleSeller:     true,
	models.RoleTourGuide:  true,
}

// DefaultUserService is the production UserService.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

func (s *DefaultUserService) Register(req RegisterRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Username == "" {
		return nil, utils.NewError(utils.KindValidation, "username is required")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, utils.NewError(utils.KindValidation, "invalid email address")
	}
	if len(req.Password) < 8 {
		return nil, utils.NewError(utils.KindValidation, "password must be at least 8 characters")
	}
	if !selfServeRoles[req.Role] {
		return nil, utils.NewError(utils.KindValidation, "invalid role")
	}

	var dob time.Time
	if req.Role == models.RoleTourist {
		if req.DateOfBirth == "" {
			return nil, utils.NewError(utils.KindValidation, "date of birth is required for tourists")
		}
		parsed, err := time.Parse(dobLayout, req.DateOfBirth)
		if err != nil {
			return nil, utils.NewError(utils.KindValidation, "date of birth must be YYYY-MM-DD")
		}
		if !parsed.Before(time.Now()) {
			return nil, utils.NewError(utils.KindValidation, "date of birth must be in the past")
		}
		dob = parsed
	}

	if existing, err := s.Repo.GetByUsername(req.Username); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "registration failed", err)
	} else if existing != nil {
		return nil, utils.NewError(utils.KindConflict, "username is already taken")
	}
	if existing, err := s.Repo.GetByEmail(req.Email); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "registration failed", err)
	} else if existing != nil {
		return nil, utils.NewError(utils.KindConflict, "email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to hash password", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		DateOfBirth:  dob,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if u.Role == models.RoleTourist {
		u.LoyaltyLevel = 1
	}

	token, err := utils.GenerateToken(u.ID, u.Username, u.Role, tokenTTL)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to issue token", err)
	}
	u.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(u); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to create account", err)
	}

	s.Logger.Info("user registered", zap.String("user", u.ID), zap.String("role", u.Role))
	return &AuthResponse{User: u, Token: token}, nil
}

func (s *DefaultUserService) Login(req LoginRequest) (*AuthResponse, error) {
	u, err := s.Repo.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "login failed", err)
	}
	if u == nil {
		return nil, utils.NewError(utils.KindUnauthorized, "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, utils.NewError(utils.KindUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(u.ID, u.Username, u.Role, tokenTTL)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to issue token", err)
	}

	u.TokenHash = utils.HashToken(token)
	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(u); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to store session", err)
	}

	return &AuthResponse{User: u, Token: token}, nil
}

// Logout clears the stored token hash, ending the session.
func (s *DefaultUserService) Logout(userID string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "logout failed", err)
	}
	if u == nil {
		return utils.NewError(utils.KindNotFound, "user not found")
	}
	u.TokenHash = ""
	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(u); err != nil {
		return utils.WrapError(utils.KindInternal, "logout failed", err)
	}
	return nil
}
