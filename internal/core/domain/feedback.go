package domain

import (
	"time"

	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
)

// Rating bounds for feedback.
const (
	MinRating = 1
	MaxRating = 5

	MaxCommentLength = 2000
)

// Feedback is a standalone satisfaction rating, optionally attributed to an
// email address.
type Feedback struct {
	ID        string
	Email     *string
	Rating    int
	Comment   *string
	CreatedAt time.Time
}

// FeedbackParams holds parameters for submitting feedback.
type FeedbackParams struct {
	Email   *string
	Rating  int
	Comment *string
}

// Validate validates feedback parameters.
func (p *FeedbackParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.Rating < MinRating || p.Rating > MaxRating {
		errs.Add("rating", "Rating must be between 1 and 5")
	}

	if p.Email != nil && !isValidEmail(*p.Email) {
		errs.Add("email", "Invalid email format")
	}

	if p.Comment != nil && len(*p.Comment) > MaxCommentLength {
		errs.Add("comment", "Comment must be 2000 characters or less")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// NewFeedback creates a valid new feedback entry.
func NewFeedback(params FeedbackParams) (*Feedback, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Feedback{
		Email:     params.Email,
		Rating:    params.Rating,
		Comment:   params.Comment,
		CreatedAt: time.Now().UTC(),
	}, nil
}
