package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"ticksy/internal/config"
	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserBanned         = errors.New("user account is banned")
)

// Claims carried in every access token. Role is a snapshot at issue time;
// the auth middleware re-reads the user record so role and status changes
// take effect without waiting for expiry.
type Claims struct {
	UserID int64       `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	store storage.Store
	cfg   config.AuthConfig
	log   *logger.Logger
}

func NewAuthService(store storage.Store, cfg config.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Self-service signup only hands out attendee or organizer; anything
	// else silently falls back to attendee.
	role := models.Role(req.Role)
	if role != models.RoleAttendee && role != models.RoleOrganizer {
		role = models.RoleAttendee
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.UserActive,
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.log.LogAuth("SIGNUP", user.Email, fmt.Sprintf("Registered user %d with role %s", user.ID, user.Role))
	return &models.AuthResponse{User: user, AccessToken: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.LogAuth("LOGIN_FAILED", req.Email, "Password mismatch")
		return nil, ErrInvalidCredentials
	}

	if user.Status == models.UserBanned {
		s.log.LogAuth("LOGIN_BANNED", req.Email, "Banned user attempted login")
		return nil, ErrUserBanned
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.log.LogAuth("LOGIN", user.Email, fmt.Sprintf("User %d logged in", user.ID))
	return &models.AuthResponse{User: user, AccessToken: token}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.LogAuth("PROFILE_UPDATE", user.Email, fmt.Sprintf("User %d updated profile", user.ID))
	return user, nil
}

// VerifyToken parses and validates an access token and returns its claims.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
