package domain

import (
	"time"

	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
)

// MaxContentLength caps message content input.
const MaxContentLength = 10000

// MessageType distinguishes user chat entries from system notices.
type MessageType string

const (
	MessageText   MessageType = "text"
	MessageSystem MessageType = "system"
)

// IsValid reports whether the type is one of the known values.
func (t MessageType) IsValid() bool {
	switch t {
	case MessageText, MessageSystem:
		return true
	}
	return false
}

// Message is a single chat entry attached to a ticket. TicketID references a
// Ticket by convention only; existence is not checked on create. Messages
// are immutable once created.
type Message struct {
	ID          string
	TicketID    string
	SenderEmail string
	Content     string
	Type        MessageType
	CreatedAt   time.Time
}

// MessageParams holds parameters for creating a message.
type MessageParams struct {
	TicketID    string
	SenderEmail string
	Content     string
	Type        MessageType
}

// Validate validates message creation parameters.
func (p *MessageParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.TicketID == "" {
		errs.Add("ticket_id", "Ticket ID is required")
	}

	if p.SenderEmail == "" {
		errs.Add("sender_email", "Sender email is required")
	} else if !isValidEmail(p.SenderEmail) {
		errs.Add("sender_email", "Invalid email format")
	}

	if p.Content == "" {
		errs.Add("content", "Content is required")
	} else if len(p.Content) > MaxContentLength {
		errs.Add("content", "Content must be 10000 characters or less")
	}

	if p.Type != "" && !p.Type.IsValid() {
		errs.Add("type", "Type must be one of: text, system")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// NewMessage creates a valid new message with defaults applied.
func NewMessage(params MessageParams) (*Message, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	msgType := params.Type
	if msgType == "" {
		msgType = MessageText
	}

	return &Message{
		TicketID:    params.TicketID,
		SenderEmail: params.SenderEmail,
		Content:     params.Content,
		Type:        msgType,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
