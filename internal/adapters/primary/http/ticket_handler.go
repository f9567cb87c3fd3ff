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
	defaultTicketsLimit = 25
	maxTicketsLimit     = 100
)

// TicketHandler handles HTTP requests for tickets.
type TicketHandler struct {
	ticketService  ports.TicketService
	messageHandler *MessageHandler
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(
	ticketService ports.TicketService,
	messageHandler *MessageHandler,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *TicketHandler {
	return &TicketHandler{
		ticketService:  ticketService,
		messageHandler: messageHandler,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "ticket"),
	}
}

// RegisterRoutes registers the ticket endpoints.
// These routes are relative to /tickets
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListTickets)
	r.Post("/", h.HandleCreateTicket)

	r.Route("/{ticketID}", func(r chi.Router) {
		r.Get("/", h.HandleGetTicket)
		r.Patch("/", h.HandleUpdateTicket)

		if h.messageHandler != nil {
			r.Mount("/messages", h.messageHandler.Router())
		}
	})
}

// --- Request DTOs ---

// CreateTicketRequest defines the expected JSON body for creating a ticket
type CreateTicketRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	CustomerEmail string  `json:"customer_email"`
	AssignedTo    *string `json:"assigned_to"`
}

// Validate validates the create ticket request
func (r *CreateTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("title", r.Title).
		MaxLength("title", r.Title, domain.MaxTitleLength)

	v.Required("description", r.Description).
		MaxLength("description", r.Description, domain.MaxDescriptionLength)

	v.Required("customer_email", r.CustomerEmail).
		Email("customer_email", r.CustomerEmail).
		MaxLength("customer_email", r.CustomerEmail, domain.MaxEmailLength)

	v.OneOf("status", r.Status, []string{
		string(domain.StatusOpen),
		string(domain.StatusPending),
		string(domain.StatusResolved),
		string(domain.StatusClosed),
	})

	v.OneOf("priority", r.Priority, []string{
		string(domain.PriorityLow),
		string(domain.PriorityMedium),
		string(domain.PriorityHigh),
	})

	if r.AssignedTo != nil {
		v.Email("assigned_to", *r.AssignedTo)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateTicketRequest defines the expected JSON body for updating a ticket.
// All fields are optional; absent fields are left untouched.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssignedTo  *string `json:"assigned_to"`
}

// Validate validates the update ticket request
func (r *UpdateTicketRequest) Validate() error {
	v := validation.NewValidator()

	if r.Title != nil {
		v.Custom("title", *r.Title != "", "Title cannot be empty").
			MaxLength("title", *r.Title, domain.MaxTitleLength)
	}

	if r.Description != nil {
		v.MaxLength("description", *r.Description, domain.MaxDescriptionLength)
	}

	if r.Status != nil {
		v.OneOf("status", *r.Status, []string{
			string(domain.StatusOpen),
			string(domain.StatusPending),
			string(domain.StatusResolved),
			string(domain.StatusClosed),
		})
	}

	if r.Priority != nil {
		v.OneOf("priority", *r.Priority, []string{
			string(domain.PriorityLow),
			string(domain.PriorityMedium),
			string(domain.PriorityHigh),
		})
	}

	if r.AssignedTo != nil && *r.AssignedTo != "" {
		v.Email("assigned_to", *r.AssignedTo)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// toTicketUpdate converts the request into the domain update set.
func (r *UpdateTicketRequest) toTicketUpdate() domain.TicketUpdate {
	update := domain.TicketUpdate{
		Title:       r.Title,
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
	}

	if r.Status != nil {
		status := domain.TicketStatus(*r.Status)
		update.Status = &status
	}

	if r.Priority != nil {
		priority := domain.TicketPriority(*r.Priority)
		update.Priority = &priority
	}

	return update
}

// --- Response DTOs ---

// TicketDTO defines the JSON response for tickets.
type TicketDTO struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	CustomerEmail string  `json:"customer_email"`
	AssignedTo    *string `json:"assigned_to"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// UpdateResult reports a skipped update when the patch carried no fields.
type UpdateResult struct {
	Updated bool `json:"updated"`
}

func toTicketDTO(ticket *domain.Ticket) TicketDTO {
	return TicketDTO{
		ID:            ticket.ID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		Status:        string(ticket.Status),
		Priority:      string(ticket.Priority),
		CustomerEmail: ticket.CustomerEmail,
		AssignedTo:    ticket.AssignedTo,
		CreatedAt:     ticket.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     ticket.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toTicketDTOs(tickets []*domain.Ticket) []TicketDTO {
	response := make([]TicketDTO, 0, len(tickets))
	for _, ticket := range tickets {
		response = append(response, toTicketDTO(ticket))
	}
	return response
}

// --- Handlers ---

// HandleCreateTicket handles requests to create a new ticket.
func (h *TicketHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.CreateTicketParams{
		Title:         req.Title,
		Description:   req.Description,
		Status:        domain.TicketStatus(req.Status),
		Priority:      domain.TicketPriority(req.Priority),
		CustomerEmail: req.CustomerEmail,
		AssignedTo:    req.AssignedTo,
	}

	ticket, err := h.ticketService.CreateTicket(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket created",
		"ticket_id", ticket.ID,
		"priority", ticket.Priority,
		"customer_email", ticket.CustomerEmail,
	)

	WriteCreated(w, toTicketDTO(ticket))
}

// HandleListTickets handles requests to list tickets with optional filters.
func (h *TicketHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	params := ports.ListTicketsParams{
		CustomerEmail: validation.ParseStringQueryParam(r, "customer_email"),
		Status:        validation.ParseStringQueryParam(r, "status"),
		Limit:         validation.ParseLimit(r, defaultTicketsLimit, maxTicketsLimit),
	}

	tickets, err := h.ticketService.ListTickets(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toTicketDTOs(tickets))
}

// HandleGetTicket handles requests to fetch a single ticket.
func (h *TicketHandler) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.GetTicket(r.Context(), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleUpdateTicket handles requests to partially update a ticket.
func (h *TicketHandler) HandleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := h.parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	update := req.toTicketUpdate()
	if update.IsEmpty() {
		// Nothing to change. Report it without touching the ticket.
		WriteJSON(w, http.StatusOK, UpdateResult{Updated: false})
		return
	}

	ticket, err := h.ticketService.UpdateTicket(r.Context(), ticketID, update)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket updated",
		"ticket_id", ticket.ID,
		"status", ticket.Status,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// --- Helper methods ---

// parseTicketID extracts and validates the ticket ID from the URL
func (h *TicketHandler) parseTicketID(r *http.Request) (string, error) {
	ticketID := chi.URLParam(r, "ticketID")
	if !validation.IsObjectID(ticketID) {
		return "", apperrors.ErrInvalidID
	}
	return ticketID, nil
}
