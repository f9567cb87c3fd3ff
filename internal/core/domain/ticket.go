package domain

import (
	"time"

	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
)

// Field length limits for ticket input.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 10000
)

// TicketStatus represents the possible states of a ticket.
type TicketStatus string

const (
	StatusOpen     TicketStatus = "open"
	StatusPending  TicketStatus = "pending"
	StatusResolved TicketStatus = "resolved"
	StatusClosed   TicketStatus = "closed"
)

// IsValid reports whether the status is one of the known values.
func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusPending, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// IsValid reports whether the priority is one of the known values.
func (p TicketPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Ticket is a customer support case. ID is the hex form of the document ID,
// assigned by the repository on insert. Tickets are never hard-deleted.
type Ticket struct {
	ID            string
	Title         string
	Description   string
	Status        TicketStatus
	Priority      TicketPriority
	CustomerEmail string
	AssignedTo    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TicketParams holds parameters for creating a ticket.
type TicketParams struct {
	Title         string
	Description   string
	Status        TicketStatus
	Priority      TicketPriority
	CustomerEmail string
	AssignedTo    *string
}

// Validate validates ticket creation parameters.
func (p *TicketParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.Title == "" {
		errs.Add("title", "Title is required")
	} else if len(p.Title) > MaxTitleLength {
		errs.Add("title", "Title must be 255 characters or less")
	}

	if p.Description == "" {
		errs.Add("description", "Description is required")
	} else if len(p.Description) > MaxDescriptionLength {
		errs.Add("description", "Description must be 10000 characters or less")
	}

	if p.CustomerEmail == "" {
		errs.Add("customer_email", "Customer email is required")
	} else if !isValidEmail(p.CustomerEmail) {
		errs.Add("customer_email", "Invalid email format")
	}

	// Status and priority are optional; empty values default in NewTicket.
	if p.Status != "" && !p.Status.IsValid() {
		errs.Add("status", "Status must be one of: open, pending, resolved, closed")
	}
	if p.Priority != "" && !p.Priority.IsValid() {
		errs.Add("priority", "Priority must be one of: low, medium, high")
	}

	if p.AssignedTo != nil && !isValidEmail(*p.AssignedTo) {
		errs.Add("assigned_to", "Invalid email format")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// NewTicket creates a valid new ticket with defaults applied.
func NewTicket(params TicketParams) (*Ticket, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = StatusOpen
	}
	priority := params.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	return &Ticket{
		Title:         params.Title,
		Description:   params.Description,
		Status:        status,
		Priority:      priority,
		CustomerEmail: params.CustomerEmail,
		AssignedTo:    params.AssignedTo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// TicketUpdate carries a partial update. Nil fields are left untouched.
// Any status value from the valid set is accepted; there is no transition
// state machine.
type TicketUpdate struct {
	Title       *string
	Description *string
	Status      *TicketStatus
	Priority    *TicketPriority
	AssignedTo  *string
}

// IsEmpty reports whether the update carries no recognized fields.
func (u *TicketUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.AssignedTo == nil
}

// Validate validates the fields that are present.
func (u *TicketUpdate) Validate() error {
	errs := apperrors.NewValidationErrors()

	if u.Title != nil {
		if *u.Title == "" {
			errs.Add("title", "Title cannot be empty")
		} else if len(*u.Title) > MaxTitleLength {
			errs.Add("title", "Title must be 255 characters or less")
		}
	}
	if u.Description != nil && len(*u.Description) > MaxDescriptionLength {
		errs.Add("description", "Description must be 10000 characters or less")
	}
	if u.Status != nil && !u.Status.IsValid() {
		errs.Add("status", "Status must be one of: open, pending, resolved, closed")
	}
	if u.Priority != nil && !u.Priority.IsValid() {
		errs.Add("priority", "Priority must be one of: low, medium, high")
	}
	if u.AssignedTo != nil && !isValidEmail(*u.AssignedTo) {
		errs.Add("assigned_to", "Invalid email format")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
