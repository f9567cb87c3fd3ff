package domain

import (
	"time"

	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
)

// Field length limits for FAQ input.
const (
	MaxQuestionLength = 500
	MaxAnswerLength   = 10000
)

// Faq is a knowledge-base entry matched by the search endpoint.
type Faq struct {
	ID        string
	Question  string
	Answer    string
	Tags      []string
	Views     int
	CreatedAt time.Time
}

// FaqParams holds parameters for creating an FAQ entry.
type FaqParams struct {
	Question string
	Answer   string
	Tags     []string
}

// Validate validates FAQ creation parameters.
func (p *FaqParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.Question == "" {
		errs.Add("question", "Question is required")
	} else if len(p.Question) > MaxQuestionLength {
		errs.Add("question", "Question must be 500 characters or less")
	}

	if p.Answer == "" {
		errs.Add("answer", "Answer is required")
	} else if len(p.Answer) > MaxAnswerLength {
		errs.Add("answer", "Answer must be 10000 characters or less")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// NewFaq creates a valid new FAQ entry. Tags normalize to an empty slice so
// the stored document always carries an array.
func NewFaq(params FaqParams) (*Faq, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Faq{
		Question:  params.Question,
		Answer:    params.Answer,
		Tags:      tags,
		Views:     0,
		CreatedAt: time.Now().UTC(),
	}, nil
}
