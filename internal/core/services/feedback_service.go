package services

import (
	"context"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// FeedbackService implements business logic for feedback collection
type FeedbackService struct {
	feedbackRepo ports.FeedbackRepository
}

var _ ports.FeedbackService = (*FeedbackService)(nil)

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedbackRepo ports.FeedbackRepository) ports.FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

// CreateFeedback records a rating with optional email and comment
func (s *FeedbackService) CreateFeedback(ctx context.Context, params ports.CreateFeedbackParams) (*domain.Feedback, error) {
	feedbackParams := domain.FeedbackParams{
		Email:   params.Email,
		Rating:  params.Rating,
		Comment: params.Comment,
	}

	feedback, err := domain.NewFeedback(feedbackParams)
	if err != nil {
		return nil, err
	}

	return s.feedbackRepo.Create(ctx, feedback)
}

// ListFeedback returns recent feedback entries, newest first
func (s *FeedbackService) ListFeedback(ctx context.Context, limit int) ([]*domain.Feedback, error) {
	return s.feedbackRepo.List(ctx, limit)
}
