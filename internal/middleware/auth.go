package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/services"
	"ticksy/internal/storage"
	"ticksy/internal/utils"
)

const (
	ContextUserKey   = "current_user"
	ContextUserIDKey = "current_user_id"
)

// RequireAuth validates the bearer token and loads the user record, so
// role and status changes apply immediately rather than at token expiry.
// Banned users are rejected here regardless of token validity.
func RequireAuth(auth *services.AuthService, store storage.Store, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Authentication required", "missing bearer token"))
			return
		}

		claims, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.LogSecurity("INVALID_TOKEN", fmt.Sprintf("Rejected token from IP: %s", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Authentication required", err.Error()))
			return
		}

		user, err := store.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Authentication required", "user no longer exists"))
			return
		}

		if user.Status == models.UserBanned {
			log.LogSecurity("BANNED_ACCESS", fmt.Sprintf("Banned user %d attempted request", user.ID))
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse("Account banned", ""))
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// RequireRole runs after RequireAuth and gates the request on the user's
// current role.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Authentication required", ""))
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse("Insufficient permissions", ""))
	}
}

func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

func CurrentUserID(c *gin.Context) int64 {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0
	}
	id, _ := value.(int64)
	return id
}
