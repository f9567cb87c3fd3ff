package services

import (
	"context"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// FaqService implements business logic for the knowledge base
type FaqService struct {
	faqRepo ports.FaqRepository
}

var _ ports.FaqService = (*FaqService)(nil)

// NewFaqService creates a new FAQ service
func NewFaqService(faqRepo ports.FaqRepository) ports.FaqService {
	return &FaqService{faqRepo: faqRepo}
}

// CreateFaq adds an entry to the knowledge base
func (s *FaqService) CreateFaq(ctx context.Context, params ports.CreateFaqParams) (*domain.Faq, error) {
	faqParams := domain.FaqParams{
		Question: params.Question,
		Answer:   params.Answer,
		Tags:     params.Tags,
	}

	faq, err := domain.NewFaq(faqParams)
	if err != nil {
		return nil, err
	}

	return s.faqRepo.Create(ctx, faq)
}

// SearchFaqs finds entries whose question, answer, or tags contain the query.
// An empty query returns everything up to the limit.
func (s *FaqService) SearchFaqs(ctx context.Context, query string, limit int) ([]*domain.Faq, error) {
	return s.faqRepo.Search(ctx, query, limit)
}
