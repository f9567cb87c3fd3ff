package services

import (
	"context"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// TicketService implements business logic for ticket management
type TicketService struct {
	ticketRepo ports.TicketRepository
}

var _ ports.TicketService = (*TicketService)(nil)

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo ports.TicketRepository) ports.TicketService {
	return &TicketService{ticketRepo: ticketRepo}
}

// CreateTicket handles the use case for submitting a new ticket
func (s *TicketService) CreateTicket(ctx context.Context, params ports.CreateTicketParams) (*domain.Ticket, error) {
	// 1. Create domain entity with validation
	ticketParams := domain.TicketParams{
		Title:         params.Title,
		Description:   params.Description,
		Status:        params.Status,
		Priority:      params.Priority,
		CustomerEmail: params.CustomerEmail,
		AssignedTo:    params.AssignedTo,
	}

	ticket, err := domain.NewTicket(ticketParams)
	if err != nil {
		return nil, err // Validation errors are returned here
	}

	// 2. Persist the ticket
	return s.ticketRepo.Create(ctx, ticket)
}

// GetTicket retrieves a single ticket by its identifier
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.ticketRepo.GetByID(ctx, ticketID)
}

// ListTickets retrieves tickets newest first, optionally filtered by customer
// email and status. An unknown status value simply matches nothing.
func (s *TicketService) ListTickets(ctx context.Context, params ports.ListTicketsParams) ([]*domain.Ticket, error) {
	filter := ports.TicketFilter{
		CustomerEmail: params.CustomerEmail,
		Limit:         params.Limit,
	}
	if params.Status != nil {
		status := domain.TicketStatus(*params.Status)
		filter.Status = &status
	}

	return s.ticketRepo.List(ctx, filter)
}

// UpdateTicket applies a partial update to a ticket
func (s *TicketService) UpdateTicket(ctx context.Context, ticketID string, update domain.TicketUpdate) (*domain.Ticket, error) {
	// 1. Reject updates that carry nothing to change
	if update.IsEmpty() {
		return nil, apperrors.ErrEmptyUpdate
	}

	// 2. Validate the fields that are present
	if err := update.Validate(); err != nil {
		return nil, err
	}

	// 3. Persist; the repository refreshes updated_at
	return s.ticketRepo.Update(ctx, ticketID, &update)
}
