package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticksy/internal/config"
	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/services"
	"ticksy/internal/storage"
)

func newGuardedRouter(t *testing.T) (*gin.Engine, *services.AuthService, *storage.InMemoryStore) {
	t.Helper()
	t.Setenv("LOG_DIR", t.TempDir())
	log := logger.NewLogger()
	t.Cleanup(log.Close)

	store := storage.NewInMemoryStore()
	auth := services.NewAuthService(store, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(auth, store, log), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})
	router.GET("/admin", RequireAuth(auth, store, log), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, auth, store
}

func signupAttendee(t *testing.T, auth *services.AuthService) *models.AuthResponse {
	t.Helper()
	resp, err := auth.Signup(context.Background(), &models.SignupRequest{
		FirstName: "Brian",
		LastName:  "Otieno",
		Email:     "brian@example.com",
		Phone:     "254700000010",
		Password:  "secret123",
	})
	require.NoError(t, err)
	return resp
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingToken(t *testing.T) {
	router, _, _ := newGuardedRouter(t)

	w := doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	router, _, _ := newGuardedRouter(t)

	w := doRequest(router, "/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	router, auth, _ := newGuardedRouter(t)
	resp := signupAttendee(t, auth)

	w := doRequest(router, "/protected", resp.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}

func TestRequireRoleForbidden(t *testing.T) {
	router, auth, _ := newGuardedRouter(t)
	resp := signupAttendee(t, auth)

	w := doRequest(router, "/admin", resp.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolePicksUpPromotion(t *testing.T) {
	router, auth, store := newGuardedRouter(t)
	resp := signupAttendee(t, auth)

	// Promote after the token was issued; the guard reads the record
	resp.User.Role = models.RoleAdmin
	require.NoError(t, store.UpdateUser(context.Background(), resp.User))

	w := doRequest(router, "/admin", resp.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsBannedUser(t *testing.T) {
	router, auth, store := newGuardedRouter(t)
	resp := signupAttendee(t, auth)

	resp.User.Status = models.UserBanned
	require.NoError(t, store.UpdateUser(context.Background(), resp.User))

	w := doRequest(router, "/protected", resp.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	router, auth, store := newGuardedRouter(t)
	resp := signupAttendee(t, auth)

	require.NoError(t, store.DeleteUser(context.Background(), resp.User.ID))

	w := doRequest(router, "/protected", resp.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
