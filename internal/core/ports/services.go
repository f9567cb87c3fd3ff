package ports

import (
	"context"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
)

// RegisterParams defines the input for registering a user.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     domain.UserRole
}

// AuthService defines the port for authentication business logic.
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// CreateTicketParams defines the input for creating a ticket.
type CreateTicketParams struct {
	Title         string
	Description   string
	Status        domain.TicketStatus
	Priority      domain.TicketPriority
	CustomerEmail string
	AssignedTo    *string
}

// ListTicketsParams defines the input for listing tickets.
type ListTicketsParams struct {
	CustomerEmail *string
	Status        *string
	Limit         int
}

// TicketService defines the core business operations for managing tickets.
type TicketService interface {
	CreateTicket(ctx context.Context, params CreateTicketParams) (*domain.Ticket, error)
	GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error)
	ListTickets(ctx context.Context, params ListTicketsParams) ([]*domain.Ticket, error)
	// UpdateTicket applies a non-empty partial update and returns the
	// updated ticket.
	UpdateTicket(ctx context.Context, ticketID string, update domain.TicketUpdate) (*domain.Ticket, error)
}

// CreateMessageParams defines the input for creating a message. TicketID is
// the path ticket; BodyTicketID is the ticket claimed by the request body and
// must match before anything is persisted.
type CreateMessageParams struct {
	TicketID     string
	BodyTicketID string
	SenderEmail  string
	Content      string
	Type         domain.MessageType
}

// MessageService defines the port for ticket messaging. CreateMessage
// persists the message and then notifies the ticket's live subscribers.
type MessageService interface {
	CreateMessage(ctx context.Context, params CreateMessageParams) (*domain.Message, error)
	ListMessages(ctx context.Context, ticketID string, limit int) ([]*domain.Message, error)
}

// CreateFaqParams defines the input for creating an FAQ entry.
type CreateFaqParams struct {
	Question string
	Answer   string
	Tags     []string
}

// FaqService defines the port for the knowledge base.
type FaqService interface {
	CreateFaq(ctx context.Context, params CreateFaqParams) (*domain.Faq, error)
	SearchFaqs(ctx context.Context, query string, limit int) ([]*domain.Faq, error)
}

// CreateFeedbackParams defines the input for submitting feedback.
type CreateFeedbackParams struct {
	Email   *string
	Rating  int
	Comment *string
}

// FeedbackService defines the port for feedback collection.
type FeedbackService interface {
	CreateFeedback(ctx context.Context, params CreateFeedbackParams) (*domain.Feedback, error)
	ListFeedback(ctx context.Context, limit int) ([]*domain.Feedback, error)
}

// SeedResult reports how many demo documents a seed run created.
type SeedResult struct {
	Faq    int `json:"faq"`
	Ticket int `json:"ticket"`
}

// SeedService defines the port for loading demo data. Seeding only touches
// collections that are empty, so repeated runs are harmless.
type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

// EventBroadcaster defines the port for pushing live notifications to the
// subscribers of a ticket. Publish is fire-and-forget: delivery failures are
// handled internally and never surface to the caller.
type EventBroadcaster interface {
	Publish(ticketID string, event domain.MessageEvent)
}
