package handlers

import (
	"net/http"

	"tripmart/models"
	"tripmart/services/catalog"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Catalog catalog.CatalogService
}

func NewAdminHandler(cs catalog.CatalogService) *AdminHandler {
	return &AdminHandler{Catalog: cs}
}

// FlagListing marks a listing inappropriate; new bookings are refused and
// the owner is notified.
func (h *AdminHandler) FlagListing(c *gin.Context) {
	if err := h.Catalog.Flag(models.BookingType(c.Param("type")), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{"flagged": true})
}

func (h *AdminHandler) UnflagListing(c *gin.Context) {
	if err := h.Catalog.Unflag(models.BookingType(c.Param("type")), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{"flagged": false})
}
