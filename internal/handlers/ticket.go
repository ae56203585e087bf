package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticksy/internal/middleware"
	"ticksy/internal/models"
	"ticksy/internal/services"
	"ticksy/internal/storage"
	"ticksy/internal/utils"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

func (h *TicketHandler) ListTickets(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tickets, err := h.ticketService.ListTickets(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list tickets", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Tickets retrieved", tickets))
}

func (h *TicketHandler) CreateTicket(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), middleware.CurrentUserID(c), eventID, &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, utils.ErrorResponse("Not your event", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to create ticket", err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Ticket created", ticket))
}

func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	ticket, err := h.ticketService.UpdateTicket(c.Request.Context(), middleware.CurrentUserID(c), ticketID, &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Ticket not found", err.Error()))
		case errors.Is(err, services.ErrQuantityBelowSold):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid quantity", err.Error()))
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, utils.ErrorResponse("Not your ticket", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update ticket", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Ticket updated", ticket))
}

func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ticketService.DeleteTicket(c.Request.Context(), middleware.CurrentUserID(c), ticketID); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Ticket not found", err.Error()))
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, utils.ErrorResponse("Not your ticket", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to delete ticket", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Ticket deleted", nil))
}
