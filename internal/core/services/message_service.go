package services

import (
	"context"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// MessageService implements business logic for ticket conversations
type MessageService struct {
	messageRepo ports.MessageRepository
	broadcaster ports.EventBroadcaster
}

var _ ports.MessageService = (*MessageService)(nil)

// NewMessageService creates a new message service
func NewMessageService(messageRepo ports.MessageRepository, broadcaster ports.EventBroadcaster) ports.MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		broadcaster: broadcaster,
	}
}

// CreateMessage persists a message on a ticket and then pushes it to the
// ticket's live subscribers. The push happens only after a successful insert,
// so subscribers never see a message that is not stored.
func (s *MessageService) CreateMessage(ctx context.Context, params ports.CreateMessageParams) (*domain.Message, error) {
	// 1. The body must agree with the path about which ticket this is for.
	// Nothing is persisted when they disagree.
	if params.BodyTicketID != "" && params.BodyTicketID != params.TicketID {
		return nil, apperrors.ErrTicketIDMismatch
	}

	// 2. Create domain entity with validation
	messageParams := domain.MessageParams{
		TicketID:    params.TicketID,
		SenderEmail: params.SenderEmail,
		Content:     params.Content,
		Type:        params.Type,
	}

	message, err := domain.NewMessage(messageParams)
	if err != nil {
		return nil, err
	}

	// 3. Persist the message
	created, err := s.messageRepo.Create(ctx, message)
	if err != nil {
		return nil, err
	}

	// 4. Notify live subscribers. Publish never fails the request; delivery
	// problems are the broadcaster's to log.
	s.broadcaster.Publish(created.TicketID, domain.NewMessageEvent(created))

	return created, nil
}

// ListMessages returns the newest limit messages of a ticket in chronological
// order
func (s *MessageService) ListMessages(ctx context.Context, ticketID string, limit int) ([]*domain.Message, error) {
	return s.messageRepo.ListByTicket(ctx, ticketID, limit)
}
