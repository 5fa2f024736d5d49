package handlers

import (
	"net/http"
	"strconv"

	"tripmart/models"
	"tripmart/services/booking"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle and rating endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(bs booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bs}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	req.TouristID = c.GetString("userID")

	b, err := h.Bookings.Create(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, b)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Bookings.GetByID(c.GetString("userID"), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, b)
}

func (h *BookingHandler) List(c *gin.Context) {
	out, err := h.Bookings.ListByTourist(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, out)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.Bookings.Cancel(c.GetString("userID"), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, b)
}

// UpdateStatus is the admin lifecycle endpoint (confirm, complete, attend).
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	b, err := h.Bookings.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, b)
}

func (h *BookingHandler) Rate(c *gin.Context) {
	var req struct {
		Rating float64 `json:"rating"`
		Review string  `json:"review"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	summary, err := h.Bookings.Rate(c.GetString("userID"), c.Param("id"), req.Rating, req.Review)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, summary)
}

func (h *BookingHandler) UpdateRating(c *gin.Context) {
	var req struct {
		Rating float64 `json:"rating"`
		Review string  `json:"review"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	summary, err := h.Bookings.UpdateRating(c.GetString("userID"), c.Param("id"), req.Rating, req.Review)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, summary)
}

// EntitySummary returns the rating aggregate for a bookable entity.
func (h *BookingHandler) EntitySummary(c *gin.Context) {
	summary, err := h.Bookings.EntitySummary(
		models.BookingType(c.Param("type")), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, summary)
}

// EntityRatings returns a page of individual ratings with reviewer names.
func (h *BookingHandler) EntityRatings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "20"))

	out, err := h.Bookings.EntityRatings(
		models.BookingType(c.Param("type")), c.Param("id"), page, perPage)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, out)
}

// GuideSummary aggregates ratings over every itinerary a guide authored.
func (h *BookingHandler) GuideSummary(c *gin.Context) {
	summary, err := h.Bookings.GuideSummary(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, summary)
}

func (h *BookingHandler) GuideDistribution(c *gin.Context) {
	dist, err := h.Bookings.GuideDistribution(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, dist)
}
