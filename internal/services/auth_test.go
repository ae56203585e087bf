package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticksy/internal/config"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

func newAuthService(t *testing.T) (*AuthService, *storage.InMemoryStore) {
	t.Helper()
	store := storage.NewInMemoryStore()
	cfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 24 * time.Hour}
	return NewAuthService(store, cfg, newTestLogger(t)), store
}

func signupReq(email, phone string) *models.SignupRequest {
	return &models.SignupRequest{
		FirstName: "Brian",
		LastName:  "Otieno",
		Email:     email,
		Phone:     phone,
		Password:  "secret123",
		Role:      "attendee",
	}
}

func TestSignupAndLogin(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := auth.Signup(ctx, signupReq("brian@example.com", "254700000010"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.RoleAttendee, resp.User.Role)
	assert.Equal(t, models.UserActive, resp.User.Status)
	assert.NotEqual(t, "secret123", resp.User.PasswordHash, "password must be hashed")

	login, err := auth.Login(ctx, &models.LoginRequest{Email: "brian@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, signupReq("brian@example.com", "254700000010"))
	require.NoError(t, err)

	_, err = auth.Signup(ctx, signupReq("brian@example.com", "254700000011"))
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestSignupAdminRoleFallsBackToAttendee(t *testing.T) {
	auth, _ := newAuthService(t)

	req := signupReq("sneaky@example.com", "254700000012")
	req.Role = "admin"

	resp, err := auth.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAttendee, resp.User.Role)
}

func TestSignupOrganizerRoleAllowed(t *testing.T) {
	auth, _ := newAuthService(t)

	req := signupReq("org@example.com", "254700000013")
	req.Role = "organizer"

	resp, err := auth.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganizer, resp.User.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, signupReq("brian@example.com", "254700000010"))
	require.NoError(t, err)

	_, err = auth.Login(ctx, &models.LoginRequest{Email: "brian@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email maps to the same error, no user enumeration
	_, err = auth.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBannedUser(t *testing.T) {
	auth, store := newAuthService(t)
	ctx := context.Background()

	resp, err := auth.Signup(ctx, signupReq("banned@example.com", "254700000014"))
	require.NoError(t, err)

	resp.User.Status = models.UserBanned
	require.NoError(t, store.UpdateUser(ctx, resp.User))

	_, err = auth.Login(ctx, &models.LoginRequest{Email: "banned@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserBanned)
}

func TestTokenRoundTripPreservesIDAndRole(t *testing.T) {
	auth, _ := newAuthService(t)

	req := signupReq("org@example.com", "254700000013")
	req.Role = "organizer"
	resp, err := auth.Signup(context.Background(), req)
	require.NoError(t, err)

	claims, err := auth.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleOrganizer, claims.Role)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfile(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := auth.Signup(ctx, signupReq("brian@example.com", "254700000010"))
	require.NoError(t, err)

	newName := "Updated"
	user, err := auth.UpdateProfile(ctx, resp.User.ID, &models.UpdateProfileRequest{FirstName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Updated", user.FirstName)
	assert.Equal(t, "Otieno", user.LastName, "untouched fields keep their value")
}
