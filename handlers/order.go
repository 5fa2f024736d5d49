package handlers

import (
	"net/http"

	"tripmart/services/order"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes product checkout and order management.
type OrderHandler struct {
	Orders order.OrderService
}

func NewOrderHandler(os order.OrderService) *OrderHandler {
	return &OrderHandler{Orders: os}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	var req order.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewError(utils.KindValidation, "invalid request body"))
		return
	}
	req.TouristID = c.GetString("userID")

	resp, err := h.Orders.Checkout(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, resp)
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.Orders.GetByID(c.GetString("userID"), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	out, err := h.Orders.ListByTourist(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, out)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	refund, err := h.Orders.Cancel(c.GetString("userID"), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{"refunded": refund})
}

// MarkDelivered is the admin fulfilment endpoint.
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	if err := h.Orders.MarkDelivered(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{"delivered": true})
}
