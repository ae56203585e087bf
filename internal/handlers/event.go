package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticksy/internal/middleware"
	"ticksy/internal/models"
	"ticksy/internal/services"
	"ticksy/internal/storage"
	"ticksy/internal/utils"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid id parameter", c.Param(name)))
		return 0, false
	}
	return id, true
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListApprovedEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list events", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Events retrieved", events))
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to retrieve event", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Event retrieved", event))
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to create event", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Event created, pending approval", event))
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), middleware.CurrentUserID(c), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, utils.ErrorResponse("Not your event", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update event", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Event updated", event))
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, utils.ErrorResponse("Not your event", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to delete event", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Event deleted", nil))
}

func (h *EventHandler) ListMyEvents(c *gin.Context) {
	events, err := h.eventService.ListOrganizerEvents(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list events", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Events retrieved", events))
}

// ---------------- Admin approval ----------------

func (h *EventHandler) ListPendingEvents(c *gin.Context) {
	events, err := h.eventService.ListPendingEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list pending events", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Pending events retrieved", events))
}

func (h *EventHandler) ApproveEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ApproveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	event, err := h.eventService.ApproveEvent(c.Request.Context(), id, *req.Approve)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to record decision", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Decision recorded", event))
}

// ---------------- Saved events ----------------

func (h *EventHandler) SaveEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	saved, err := h.eventService.SaveEvent(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
		case errors.Is(err, storage.ErrDuplicateSavedEvent):
			c.JSON(http.StatusConflict, utils.ErrorResponse("Event already saved", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to save event", err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Event saved", saved))
}

func (h *EventHandler) UnsaveEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.UnsaveEvent(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Saved event not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to unsave event", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Event unsaved", nil))
}

func (h *EventHandler) ListSavedEvents(c *gin.Context) {
	saved, err := h.eventService.ListSavedEvents(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list saved events", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Saved events retrieved", saved))
}
