package handlers

import (
	"net/http"
	"time"

	userRepo "tripmart/database/repository/user"
	"tripmart/models"
	"tripmart/services/promo"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// PromoHandler exposes promo validation and admin code management.
type PromoHandler struct {
	Promo promo.PromoService
	Users userRepo.UserRepository
}

func NewPromoHandler(ps promo.PromoService, ur userRepo.UserRepository) *PromoHandler {
	return &PromoHandler{Promo: ps, Users: ur}
}

// Validate dry-runs a code against an amount without consuming a use.
func (h *PromoHandler) Validate(c *gin.Context) {
	var req struct {
		Code   string  `json:"code"`
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}

	u, err := h.Users.GetByID(c.GetString("userID"))
	if err != nil || u == nil {
		utils.RespondError(c, utils.NewError(utils.KindUnauthorized, "user not found"))
		return
	}

	v, err := h.Promo.Validate(req.Code, u.ID, u.DateOfBirth.Month(), req.Amount)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, v)
}

// Create is the admin endpoint for minting regular codes.
func (h *PromoHandler) Create(c *gin.Context) {
	var req struct {
		Code            string  `json:"code"`
		DiscountPercent float64 `json:"discountPercent"`
		ExpiresAt       string  `json:"expiresAt"` // RFC 3339
		UsageLimit      int     `json:"usageLimit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	expires, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "expiresAt must be RFC 3339"))
		return
	}

	p := &models.PromoCode{
		Code:       req.Code,
		Type:       models.PromoTypeRegular,
		DiscountPC: req.DiscountPercent,
		ExpiresAt:  expires,
		UsageLimit: req.UsageLimit,
		Active:     true,
	}
	if err := h.Promo.Create(p); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, p)
}
