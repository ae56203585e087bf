package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticksy/internal/models"
	"ticksy/internal/services"
	"ticksy/internal/storage"
	"ticksy/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) STKPush(c *gin.Context) {
	var req models.STKPushRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	order, err := h.paymentService.InitiateSTKPush(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Order not found", err.Error()))
		case errors.Is(err, storage.ErrOrderNotPending):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Order cannot be settled", err.Error()))
		case errors.Is(err, services.ErrSettlementInProgress):
			c.JSON(http.StatusConflict, utils.ErrorResponse("Settlement already in progress", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Payment processing failed", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Payment processed", order))
}

func (h *PaymentHandler) Callback(c *gin.Context) {
	var req models.STKCallbackRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	order, err := h.paymentService.HandleCallback(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Order not found", err.Error()))
		case errors.Is(err, storage.ErrOrderNotPending):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Order already settled", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Callback processing failed", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Callback processed", order))
}
