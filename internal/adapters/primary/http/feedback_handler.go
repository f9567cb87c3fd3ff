package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/customer-service-backend/internal/adapters/primary/validation"
	"github.com/lorrc/customer-service-backend/internal/core/domain"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

const (
	defaultFeedbackLimit = 50
	maxFeedbackLimit     = 200
)

// FeedbackHandler handles HTTP requests for feedback.
type FeedbackHandler struct {
	feedbackService ports.FeedbackService
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(
	feedbackService ports.FeedbackService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		errorHandler:    errorHandler,
		logger:          logger.With("handler", "feedback"),
	}
}

// RegisterRoutes registers the feedback endpoints.
// These routes are relative to /feedback
func (h *FeedbackHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateFeedback)
	r.Get("/", h.HandleListFeedback)
}

// --- Request DTOs ---

// CreateFeedbackRequest defines the expected JSON body for submitting
// feedback. Email and comment are optional.
type CreateFeedbackRequest struct {
	Email   *string `json:"email"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

// Validate validates the create feedback request
func (r *CreateFeedbackRequest) Validate() error {
	v := validation.NewValidator()

	v.Range("rating", r.Rating, domain.MinRating, domain.MaxRating)

	if r.Email != nil && *r.Email != "" {
		v.Email("email", *r.Email).
			MaxLength("email", *r.Email, domain.MaxEmailLength)
	}

	if r.Comment != nil {
		v.MaxLength("comment", *r.Comment, domain.MaxCommentLength)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// --- Response DTOs ---

// FeedbackDTO defines the JSON response for feedback entries.
type FeedbackDTO struct {
	ID        string  `json:"id"`
	Email     *string `json:"email"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	CreatedAt string  `json:"created_at"`
}

func toFeedbackDTO(feedback *domain.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:        feedback.ID,
		Email:     feedback.Email,
		Rating:    feedback.Rating,
		Comment:   feedback.Comment,
		CreatedAt: feedback.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toFeedbackDTOs(entries []*domain.Feedback) []FeedbackDTO {
	response := make([]FeedbackDTO, 0, len(entries))
	for _, feedback := range entries {
		response = append(response, toFeedbackDTO(feedback))
	}
	return response
}

// --- Handlers ---

// HandleCreateFeedback handles requests to submit feedback.
func (h *FeedbackHandler) HandleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateFeedbackRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.CreateFeedbackParams{
		Email:   req.Email,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	feedback, err := h.feedbackService.CreateFeedback(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("feedback received",
		"feedback_id", feedback.ID,
		"rating", feedback.Rating,
	)

	WriteCreated(w, toFeedbackDTO(feedback))
}

// HandleListFeedback handles requests to list submitted feedback.
func (h *FeedbackHandler) HandleListFeedback(w http.ResponseWriter, r *http.Request) {
	limit := validation.ParseLimit(r, defaultFeedbackLimit, maxFeedbackLimit)

	entries, err := h.feedbackService.ListFeedback(r.Context(), limit)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toFeedbackDTOs(entries))
}
