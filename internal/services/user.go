package services

import (
	"context"
	"errors"
	"fmt"

	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

var (
	ErrInvalidStatus = errors.New("invalid user status")
	ErrInvalidRole   = errors.New("invalid user role")
)

// UserService covers the admin-side user management surface.
type UserService struct {
	store storage.Store
	log   *logger.Logger
}

func NewUserService(store storage.Store, log *logger.Logger) *UserService {
	return &UserService{
		store: store,
		log:   log,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.LogProcess("USER_DELETE", fmt.Sprintf("User %d deleted", id))
	return nil
}

func (s *UserService) UpdateStatus(ctx context.Context, id int64, status models.UserStatus) (*models.User, error) {
	switch status {
	case models.UserActive, models.UserBanned, models.UserPending:
	default:
		return nil, ErrInvalidStatus
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.LogProcess("USER_STATUS", fmt.Sprintf("User %d status set to %s", id, status))
	return user, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	switch role {
	case models.RoleAttendee, models.RoleOrganizer, models.RoleAdmin:
	default:
		return nil, ErrInvalidRole
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.LogProcess("USER_ROLE", fmt.Sprintf("User %d role set to %s", id, role))
	return user, nil
}
