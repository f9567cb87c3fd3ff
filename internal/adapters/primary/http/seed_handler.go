package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// SeedHandler handles requests to load demo fixtures.
type SeedHandler struct {
	seedService  ports.SeedService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(
	seedService ports.SeedService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *SeedHandler {
	return &SeedHandler{
		seedService:  seedService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "seed"),
	}
}

// RegisterRoutes registers the seed endpoint.
func (h *SeedHandler) RegisterRoutes(r chi.Router) {
	r.Post("/seed", h.HandleSeed)
}

// SeedResponse reports how many documents each collection received.
type SeedResponse struct {
	Seeded ports.SeedResult `json:"seeded"`
}

// HandleSeed handles requests to insert demo data into empty collections.
// Collections that already hold documents are left alone.
func (h *SeedHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	result, err := h.seedService.Seed(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("demo data seeded",
		"faq", result.Faq,
		"ticket", result.Ticket,
	)

	WriteJSON(w, http.StatusOK, SeedResponse{Seeded: *result})
}
