package websocket

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/lorrc/customer-service-backend/internal/config"
	"github.com/lorrc/customer-service-backend/internal/infrastructure/metrics"
)

// Handler upgrades ticket channel requests and parks each connection in its
// ticket's room until the peer goes away.
type Handler struct {
	registry   *Registry
	upgrader   websocket.Upgrader
	cfg        config.WebSocketConfig
	production bool
	logger     *slog.Logger
}

// NewHandler creates the WebSocket endpoint handler. Outside production any
// origin may connect; in production only the configured allowlist passes the
// origin check.
func NewHandler(registry *Registry, cfg config.WebSocketConfig, production bool, logger *slog.Logger) *Handler {
	handler := &Handler{
		registry:   registry,
		cfg:        cfg,
		production: production,
		logger:     logger.With("component", "websocket_handler"),
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     handler.checkOrigin,
	}

	return handler
}

// checkOrigin implements the upgrader's origin policy.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	if !h.production {
		return true
	}

	// No origin header (same-origin request or non-browser client).
	if origin == "" {
		return true
	}

	parsedOrigin, err := url.Parse(origin)
	if err != nil {
		h.logger.Warn("failed to parse websocket origin",
			"origin", origin,
			"error", err,
		)
		return false
	}

	originHost := parsedOrigin.Host

	for _, allowed := range h.cfg.AllowedOrigins {
		// Support wildcard subdomains like "*.example.com"
		if strings.HasPrefix(allowed, "*.") {
			suffix := allowed[1:] // Remove the "*", keep ".example.com"
			if strings.HasSuffix(originHost, suffix) || originHost == allowed[2:] {
				return true
			}
		} else if originHost == allowed {
			return true
		}
	}

	h.logger.Warn("websocket connection rejected due to origin",
		"origin", origin,
		"remote_addr", r.RemoteAddr,
		"allowed_origins", h.cfg.AllowedOrigins,
	)
	return false
}

// ServeTicketChannel handles GET /ws/tickets/{ticket_id}. The connection is
// subscribed to the ticket's live message events, and anything the client
// sends is echoed straight back to it.
func (h *Handler) ServeTicketChannel(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticket_id")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		metrics.WebSocketConnectionsTotal.WithLabelValues("error").Inc()
		h.logger.Warn("websocket upgrade failed",
			"ticket_id", ticketID,
			"remote_addr", r.RemoteAddr,
			"error", err,
		)
		return
	}
	metrics.WebSocketConnectionsTotal.WithLabelValues("success").Inc()

	h.logger.Info("websocket connection established",
		"ticket_id", ticketID,
		"remote_addr", r.RemoteAddr,
	)

	client := newClient(h.registry, conn, ticketID, h.cfg, h.logger)
	h.registry.Subscribe(ticketID, client)

	go client.writePump()
	go client.readPump()
}
