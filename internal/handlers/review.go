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

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) AddReview(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	review, err := h.reviewService.AddReview(c.Request.Context(), middleware.CurrentUserID(c), eventID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid rating", err.Error()))
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
		case errors.Is(err, storage.ErrDuplicateReview):
			c.JSON(http.StatusConflict, utils.ErrorResponse("Event already reviewed", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to add review", err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Review added", review))
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list reviews", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Reviews retrieved", reviews))
}
