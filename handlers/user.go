package handlers

import (
	"net/http"

	"tripmart/services/user"
	"tripmart/services/wallet"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes profile and wallet endpoints.
type UserHandler struct {
	Users  user.UserService
	Wallet wallet.WalletService
}

func NewUserHandler(us user.UserService, ws wallet.WalletService) *UserHandler {
	return &UserHandler{Users: us, Wallet: ws}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Users.GetProfile(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	u, err := h.Users.UpdateProfile(c.GetString("userID"), updates)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, u)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.Users.DeleteAccount(c.GetString("userID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{"deleted": true})
}

// RedeemPoints converts loyalty points into wallet credit.
func (h *UserHandler) RedeemPoints(c *gin.Context) {
	var req struct {
		Points int64 `json:"points"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	u, err := h.Wallet.Redeem(c.GetString("userID"), req.Points)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{
		"walletBalance": u.WalletBalance,
		"loyaltyPoints": u.LoyaltyPoints,
		"loyaltyLevel":  u.LoyaltyLevel,
	})
}

// ListByRole is the admin user directory.
func (h *UserHandler) ListByRole(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "role query parameter is required"))
		return
	}
	users, err := h.Users.ListByRole(role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, users)
}
