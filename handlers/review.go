package handlers

import (
	"net/http"

	"tripmart/models"
	"tripmart/services/review"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes the generalized review endpoints.
type ReviewHandler struct {
	Reviews review.ReviewService
}

func NewReviewHandler(rs review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: rs}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req struct {
		ReviewType models.ReviewType `json:"reviewType"`
		EntityID   string            `json:"entityId"`
		Rating     float64           `json:"rating"`
		Comment    string            `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	rev, err := h.Reviews.Create(c.GetString("userID"), req.ReviewType, req.EntityID, req.Rating, req.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, rev)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var req struct {
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	rev, err := h.Reviews.Update(c.GetString("userID"), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, rev)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Reviews.Delete(c.GetString("userID"), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{"deleted": true})
}

// ListByEntity returns an entity's reviews with the aggregate up front.
func (h *ReviewHandler) ListByEntity(c *gin.Context) {
	reviews, summary, err := h.Reviews.ListByEntity(
		models.ReviewType(c.Param("type")), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{
		"summary": summary,
		"reviews": reviews,
	})
}
