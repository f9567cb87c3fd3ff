package domain

import "time"

// EventNewMessage is the discriminator carried by live new-message
// notifications so clients can tell pushes apart from echoed frames.
const EventNewMessage = "new_message"

// MessageEvent is the payload pushed over WebSocket to every subscriber of a
// ticket after a message is persisted. Field shape matches the REST message
// representation plus the event discriminator.
type MessageEvent struct {
	ID          string      `json:"id"`
	TicketID    string      `json:"ticket_id"`
	SenderEmail string      `json:"sender_email"`
	Content     string      `json:"content"`
	Type        MessageType `json:"type"`
	CreatedAt   string      `json:"created_at"`
	Event       string      `json:"event"`
}

// NewMessageEvent builds the notification payload for a persisted message.
func NewMessageEvent(m *Message) MessageEvent {
	return MessageEvent{
		ID:          m.ID,
		TicketID:    m.TicketID,
		SenderEmail: m.SenderEmail,
		Content:     m.Content,
		Type:        m.Type,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		Event:       EventNewMessage,
	}
}
