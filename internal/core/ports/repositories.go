package ports

import (
	"context"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
)

// UserRepository defines the port for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// TicketFilter narrows ticket listings. Nil fields match everything.
type TicketFilter struct {
	CustomerEmail *string
	Status        *domain.TicketStatus
	Limit         int
}

// TicketRepository defines the port for ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	// List returns tickets matching the filter, newest first.
	List(ctx context.Context, filter TicketFilter) ([]*domain.Ticket, error)
	// Update applies the non-nil fields of update and returns the updated
	// ticket. The update must not be empty.
	Update(ctx context.Context, id string, update *domain.TicketUpdate) (*domain.Ticket, error)
	Count(ctx context.Context) (int64, error)
}

// MessageRepository defines the port for message persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// ListByTicket returns the newest limit messages for a ticket in
	// chronological order.
	ListByTicket(ctx context.Context, ticketID string, limit int) ([]*domain.Message, error)
}

// FaqRepository defines the port for FAQ persistence.
type FaqRepository interface {
	Create(ctx context.Context, faq *domain.Faq) (*domain.Faq, error)
	// Search matches query case-insensitively against question, answer, and
	// tags. An empty query matches all entries.
	Search(ctx context.Context, query string, limit int) ([]*domain.Faq, error)
	Count(ctx context.Context) (int64, error)
}

// FeedbackRepository defines the port for feedback persistence.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error)
	// List returns feedback entries, newest first.
	List(ctx context.Context, limit int) ([]*domain.Feedback, error)
}
