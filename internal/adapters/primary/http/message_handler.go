package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/customer-service-backend/internal/adapters/primary/validation"
	"github.com/lorrc/customer-service-backend/internal/core/domain"
	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

const (
	defaultMessagesLimit = 50
	maxMessagesLimit     = 200
)

// MessageHandler handles HTTP requests for ticket messages.
type MessageHandler struct {
	messageService ports.MessageService
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(
	messageService ports.MessageService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "message"),
	}
}

// Router sets up a new chi Router for message routes.
func (h *MessageHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the message-specific endpoints.
// These routes are relative to /tickets/{ticketID}/messages
func (h *MessageHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateMessage)
	r.Get("/", h.HandleListMessages)
}

// --- Request DTOs ---

// CreateMessageRequest defines the expected JSON body for posting a message.
// The ticket_id field is optional; when present it must match the URL.
type CreateMessageRequest struct {
	TicketID    string `json:"ticket_id"`
	SenderEmail string `json:"sender_email"`
	Content     string `json:"content"`
	Type        string `json:"type"`
}

// Validate validates the create message request
func (r *CreateMessageRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("sender_email", r.SenderEmail).
		Email("sender_email", r.SenderEmail).
		MaxLength("sender_email", r.SenderEmail, domain.MaxEmailLength)

	v.Required("content", r.Content).
		MaxLength("content", r.Content, domain.MaxContentLength)

	v.OneOf("type", r.Type, []string{
		string(domain.MessageText),
		string(domain.MessageSystem),
	})

	v.ObjectID("ticket_id", r.TicketID)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// --- Response DTOs ---

// MessageDTO defines the JSON response for messages.
type MessageDTO struct {
	ID          string `json:"id"`
	TicketID    string `json:"ticket_id"`
	SenderEmail string `json:"sender_email"`
	Content     string `json:"content"`
	Type        string `json:"type"`
	CreatedAt   string `json:"created_at"`
}

func toMessageDTO(message *domain.Message) MessageDTO {
	return MessageDTO{
		ID:          message.ID,
		TicketID:    message.TicketID,
		SenderEmail: message.SenderEmail,
		Content:     message.Content,
		Type:        string(message.Type),
		CreatedAt:   message.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toMessageDTOs(messages []*domain.Message) []MessageDTO {
	response := make([]MessageDTO, 0, len(messages))
	for _, message := range messages {
		response = append(response, toMessageDTO(message))
	}
	return response
}

// --- Handlers ---

// HandleCreateMessage handles requests to post a message to a ticket.
func (h *MessageHandler) HandleCreateMessage(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[CreateMessageRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.CreateMessageParams{
		TicketID:     ticketID,
		BodyTicketID: req.TicketID,
		SenderEmail:  req.SenderEmail,
		Content:      req.Content,
		Type:         domain.MessageType(req.Type),
	}

	message, err := h.messageService.CreateMessage(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("message created",
		"message_id", message.ID,
		"ticket_id", ticketID,
		"sender_email", message.SenderEmail,
	)

	WriteCreated(w, toMessageDTO(message))
}

// HandleListMessages handles requests to list a ticket's messages.
func (h *MessageHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	limit := validation.ParseLimit(r, defaultMessagesLimit, maxMessagesLimit)

	messages, err := h.messageService.ListMessages(r.Context(), ticketID, limit)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toMessageDTOs(messages))
}

// --- Helper methods ---

// parseTicketID extracts and validates the ticket ID from the URL
func (h *MessageHandler) parseTicketID(r *http.Request) (string, error) {
	ticketID := chi.URLParam(r, "ticketID")
	if !validation.IsObjectID(ticketID) {
		return "", apperrors.ErrInvalidID
	}
	return ticketID, nil
}
