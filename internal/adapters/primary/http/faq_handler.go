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
	defaultFaqLimit = 10
	maxFaqLimit     = 50
)

// FaqHandler handles HTTP requests for FAQ entries.
type FaqHandler struct {
	faqService   ports.FaqService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewFaqHandler creates a new FaqHandler.
func NewFaqHandler(
	faqService ports.FaqService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *FaqHandler {
	return &FaqHandler{
		faqService:   faqService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "faq"),
	}
}

// RegisterRoutes registers the FAQ endpoints.
// These routes are relative to /faq
func (h *FaqHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateFaq)
	r.Get("/search", h.HandleSearchFaqs)
}

// --- Request DTOs ---

// CreateFaqRequest defines the expected JSON body for creating an FAQ entry
type CreateFaqRequest struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags"`
}

// Validate validates the create FAQ request
func (r *CreateFaqRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("question", r.Question).
		MaxLength("question", r.Question, domain.MaxQuestionLength)

	v.Required("answer", r.Answer).
		MaxLength("answer", r.Answer, domain.MaxAnswerLength)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// --- Response DTOs ---

// FaqDTO defines the JSON response for FAQ entries.
type FaqDTO struct {
	ID        string   `json:"id"`
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Tags      []string `json:"tags"`
	Views     int      `json:"views"`
	CreatedAt string   `json:"created_at"`
}

func toFaqDTO(faq *domain.Faq) FaqDTO {
	return FaqDTO{
		ID:        faq.ID,
		Question:  faq.Question,
		Answer:    faq.Answer,
		Tags:      faq.Tags,
		Views:     faq.Views,
		CreatedAt: faq.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toFaqDTOs(faqs []*domain.Faq) []FaqDTO {
	response := make([]FaqDTO, 0, len(faqs))
	for _, faq := range faqs {
		response = append(response, toFaqDTO(faq))
	}
	return response
}

// --- Handlers ---

// HandleCreateFaq handles requests to create a new FAQ entry.
func (h *FaqHandler) HandleCreateFaq(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateFaqRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.CreateFaqParams{
		Question: req.Question,
		Answer:   req.Answer,
		Tags:     req.Tags,
	}

	faq, err := h.faqService.CreateFaq(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("faq created", "faq_id", faq.ID)

	WriteCreated(w, toFaqDTO(faq))
}

// HandleSearchFaqs handles keyword search over questions, answers and tags.
// An empty query returns every entry up to the limit.
func (h *FaqHandler) HandleSearchFaqs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := validation.ParseLimit(r, defaultFaqLimit, maxFaqLimit)

	faqs, err := h.faqService.SearchFaqs(r.Context(), query, limit)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toFaqDTOs(faqs))
}
