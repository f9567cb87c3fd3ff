package domain_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageType_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		msgType domain.MessageType
		want    bool
	}{
		{"text is valid", domain.MessageText, true},
		{"system is valid", domain.MessageSystem, true},
		{"empty is invalid", domain.MessageType(""), false},
		{"uppercase is invalid", domain.MessageType("TEXT"), false},
		{"unknown is invalid", domain.MessageType("image"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msgType.IsValid())
		})
	}
}

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name        string
		params      domain.MessageParams
		expectError bool
		errorField  string
	}{
		{
			name: "valid message",
			params: domain.MessageParams{
				TicketID:    "68a1f0c2b7e4d9a3c5f01234",
				SenderEmail: "a@x.com",
				Content:     "hello",
			},
			expectError: false,
		},
		{
			name: "valid system message",
			params: domain.MessageParams{
				TicketID:    "68a1f0c2b7e4d9a3c5f01234",
				SenderEmail: "bot@example.com",
				Content:     "Ticket escalated",
				Type:        domain.MessageSystem,
			},
			expectError: false,
		},
		{
			name: "missing ticket ID",
			params: domain.MessageParams{
				SenderEmail: "a@x.com",
				Content:     "hello",
			},
			expectError: true,
			errorField:  "ticket_id",
		},
		{
			name: "missing sender email",
			params: domain.MessageParams{
				TicketID: "68a1f0c2b7e4d9a3c5f01234",
				Content:  "hello",
			},
			expectError: true,
			errorField:  "sender_email",
		},
		{
			name: "invalid sender email",
			params: domain.MessageParams{
				TicketID:    "68a1f0c2b7e4d9a3c5f01234",
				SenderEmail: "not-an-email",
				Content:     "hello",
			},
			expectError: true,
			errorField:  "sender_email",
		},
		{
			name: "missing content",
			params: domain.MessageParams{
				TicketID:    "68a1f0c2b7e4d9a3c5f01234",
				SenderEmail: "a@x.com",
			},
			expectError: true,
			errorField:  "content",
		},
		{
			name: "content too long",
			params: domain.MessageParams{
				TicketID:    "68a1f0c2b7e4d9a3c5f01234",
				SenderEmail: "a@x.com",
				Content:     strings.Repeat("a", 10001),
			},
			expectError: true,
			errorField:  "content",
		},
		{
			name: "invalid type",
			params: domain.MessageParams{
				TicketID:    "68a1f0c2b7e4d9a3c5f01234",
				SenderEmail: "a@x.com",
				Content:     "hello",
				Type:        domain.MessageType("image"),
			},
			expectError: true,
			errorField:  "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := domain.NewMessage(tt.params)

			if tt.expectError {
				require.Error(t, err)

				var validationErr *apperrors.ValidationErrors
				if assert.ErrorAs(t, err, &validationErr) {
					assert.Contains(t, validationErr.Errors, tt.errorField)
				}
				assert.Nil(t, msg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, msg)
				assert.Equal(t, tt.params.TicketID, msg.TicketID)
				assert.Equal(t, tt.params.SenderEmail, msg.SenderEmail)
				assert.Equal(t, tt.params.Content, msg.Content)
				assert.False(t, msg.CreatedAt.IsZero())
			}
		})
	}
}

func TestNewMessage_DefaultType(t *testing.T) {
	msg, err := domain.NewMessage(domain.MessageParams{
		TicketID:    "68a1f0c2b7e4d9a3c5f01234",
		SenderEmail: "a@x.com",
		Content:     "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageText, msg.Type)
}

func TestNewMessageEvent(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	msg := &domain.Message{
		ID:          "68a1f0c2b7e4d9a3c5f01234",
		TicketID:    "68a1f0c2b7e4d9a3c5f09999",
		SenderEmail: "a@x.com",
		Content:     "hello",
		Type:        domain.MessageText,
		CreatedAt:   created,
	}

	event := domain.NewMessageEvent(msg)

	assert.Equal(t, msg.ID, event.ID)
	assert.Equal(t, msg.TicketID, event.TicketID)
	assert.Equal(t, msg.SenderEmail, event.SenderEmail)
	assert.Equal(t, msg.Content, event.Content)
	assert.Equal(t, msg.Type, event.Type)
	assert.Equal(t, "2025-06-01T12:30:00Z", event.CreatedAt)
	assert.Equal(t, domain.EventNewMessage, event.Event)
}

func TestMessageEvent_JSONShape(t *testing.T) {
	event := domain.MessageEvent{
		ID:          "68a1f0c2b7e4d9a3c5f01234",
		TicketID:    "68a1f0c2b7e4d9a3c5f09999",
		SenderEmail: "a@x.com",
		Content:     "hello",
		Type:        domain.MessageText,
		CreatedAt:   "2025-06-01T12:30:00Z",
		Event:       domain.EventNewMessage,
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "new_message", decoded["event"])
	assert.Equal(t, "68a1f0c2b7e4d9a3c5f09999", decoded["ticket_id"])
	assert.Equal(t, "a@x.com", decoded["sender_email"])
	assert.Equal(t, "text", decoded["type"])
}
