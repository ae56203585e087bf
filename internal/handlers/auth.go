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

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateEmail), errors.Is(err, storage.ErrDuplicatePhone):
			c.JSON(http.StatusConflict, utils.ErrorResponse("Registration failed", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Registration failed", err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("User registered", resp))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Login failed", err.Error()))
		case errors.Is(err, services.ErrUserBanned):
			c.JSON(http.StatusForbidden, utils.ErrorResponse("Login failed", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Login failed", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Login successful", resp))
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Authentication required", ""))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Profile retrieved", user))
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateEmail), errors.Is(err, storage.ErrDuplicatePhone):
			c.JSON(http.StatusConflict, utils.ErrorResponse("Profile update failed", err.Error()))
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("User not found", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Profile update failed", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Profile updated", user))
}
