package services

import (
	"context"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// SeedService loads a small demo dataset for local development
type SeedService struct {
	faqRepo    ports.FaqRepository
	ticketRepo ports.TicketRepository
}

var _ ports.SeedService = (*SeedService)(nil)

// NewSeedService creates a new seed service
func NewSeedService(faqRepo ports.FaqRepository, ticketRepo ports.TicketRepository) ports.SeedService {
	return &SeedService{
		faqRepo:    faqRepo,
		ticketRepo: ticketRepo,
	}
}

// Seed inserts demo FAQs and a demo ticket, but only into collections that
// are still empty. Running it against a populated database changes nothing.
func (s *SeedService) Seed(ctx context.Context) (*ports.SeedResult, error) {
	result := &ports.SeedResult{}

	// 1. Seed the knowledge base if it is empty
	faqCount, err := s.faqRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if faqCount == 0 {
		for _, params := range demoFaqs() {
			faq, err := domain.NewFaq(params)
			if err != nil {
				return nil, err
			}
			if _, err := s.faqRepo.Create(ctx, faq); err != nil {
				return nil, err
			}
			result.Faq++
		}
	}

	// 2. Seed a demo ticket if there are no tickets yet
	ticketCount, err := s.ticketRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if ticketCount == 0 {
		ticket, err := domain.NewTicket(demoTicket())
		if err != nil {
			return nil, err
		}
		if _, err := s.ticketRepo.Create(ctx, ticket); err != nil {
			return nil, err
		}
		result.Ticket++
	}

	return result, nil
}

func demoFaqs() []domain.FaqParams {
	return []domain.FaqParams{
		{
			Question: "How to reset my password?",
			Answer:   "Click 'Forgot password' on the sign-in page.",
			Tags:     []string{"account", "password"},
		},
		{
			Question: "How to contact support?",
			Answer:   "Create a ticket or use live chat.",
			Tags:     []string{"support"},
		},
	}
}

func demoTicket() domain.TicketParams {
	return domain.TicketParams{
		Title:         "Demo issue",
		Description:   "My app is not loading.",
		Priority:      domain.PriorityHigh,
		CustomerEmail: "customer@example.com",
	}
}
