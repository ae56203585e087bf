package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type ReviewService struct {
	store storage.Store
	log   *logger.Logger
}

func NewReviewService(store storage.Store, log *logger.Logger) *ReviewService {
	return &ReviewService{
		store: store,
		log:   log,
	}
}

func (s *ReviewService) AddReview(ctx context.Context, attendeeID, eventID int64, req *models.AddReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	review := &models.Review{
		AttendeeID: attendeeID,
		EventID:    eventID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now(),
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.log.LogProcess("REVIEW_ADD", fmt.Sprintf("Attendee %d reviewed event %d (%d stars)", attendeeID, eventID, req.Rating))
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, eventID int64) ([]*models.Review, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListReviewsByEvent(ctx, eventID)
}
