package handlers

import (
	"net/http"

	"tripmart/models"
	"tripmart/services/catalog"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes listing and product management for the owning
// roles.
type CatalogHandler struct {
	Catalog catalog.CatalogService
}

func NewCatalogHandler(cs catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: cs}
}

func (h *CatalogHandler) CreateActivity(c *gin.Context) {
	var a models.Activity
	if err := c.ShouldBindJSON(&a); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	out, err := h.Catalog.CreateActivity(c.GetString("userID"), &a)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, out)
}

func (h *CatalogHandler) ListActivities(c *gin.Context) {
	out, err := h.Catalog.ListActivities(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, out)
}

func (h *CatalogHandler) CreateItinerary(c *gin.Context) {
	var it models.Itinerary
	if err := c.ShouldBindJSON(&it); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	out, err := h.Catalog.CreateItinerary(c.GetString("userID"), &it)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, out)
}

func (h *CatalogHandler) ListItineraries(c *gin.Context) {
	out, err := h.Catalog.ListItineraries(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, out)
}

func (h *CatalogHandler) CreateHistoricalPlace(c *gin.Context) {
	var hp models.HistoricalPlace
	if err := c.ShouldBindJSON(&hp); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	out, err := h.Catalog.CreateHistoricalPlace(c.GetString("userID"), &hp)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, out)
}

func (h *CatalogHandler) ListHistoricalPlaces(c *gin.Context) {
	out, err := h.Catalog.ListHistoricalPlaces(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, out)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	out, err := h.Catalog.CreateProduct(c.GetString("userID"), &p)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, out)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	out, err := h.Catalog.ListProducts(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, out)
}
