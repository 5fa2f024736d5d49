package user

import "tripmart/models"

// RegisterRequest carries a signup. DateOfBirth uses 2006-01-02 and is
// required for tourists, ignored for other roles.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// LoginRequest carries a credential check.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is what a successful register or login returns.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService manages accounts and sessions.
type UserService interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Login(req LoginRequest) (*AuthResponse, error)
	// Logout revokes the stored session token hash.
	Logout(userID string) error

	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, updates map[string]interface{}) (*models.User, error)
	// DeleteAccount removes the account; tourist deletions cascade to
	// bookings, which are soft-marked rather than removed.
	DeleteAccount(userID string) error

	ListByRole(role string) ([]models.User, error)
}
