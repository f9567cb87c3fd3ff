package http

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// HealthChecker is what the probes need from the document store.
type HealthChecker interface {
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
}

// ChannelStats reports the live-channel gauges shown by the detailed health
// endpoint. The websocket registry implements it.
type ChannelStats interface {
	RoomCount() int
	SubscriberCount() int
}

const probeTimeout = 5 * time.Second

// HealthHandler serves the liveness, readiness, and detailed health probes.
type HealthHandler struct {
	db        HealthChecker
	channels  ChannelStats
	version   string
	startTime time.Time
}

func NewHealthHandler(db HealthChecker, channels ChannelStats, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		channels:  channels,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse is the common shape of the probe responses.
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version,omitempty"`
	Uptime    string           `json:"uptime,omitempty"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check is one dependency's result within a probe.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type memoryStats struct {
	Alloc      uint64 `json:"alloc_bytes"`
	TotalAlloc uint64 `json:"total_alloc_bytes"`
	Sys        uint64 `json:"sys_bytes"`
	NumGC      uint32 `json:"num_gc"`
}

type channelStats struct {
	Rooms       int `json:"rooms"`
	Subscribers int `json:"subscribers"`
}

// HandleLiveness answers the "is the process up" probe. It touches no
// dependencies: a deadlocked database must not make the orchestrator
// restart an otherwise healthy process.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness answers the "can we take traffic" probe: the store must
// answer a ping and serve a read before the pod joins the service.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	status, checks := h.probe(ctx, true)

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    checks,
	})
}

// HandleHealth serves the detailed view for operators: dependency checks
// plus process stats and the live-channel gauges.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	status, checks := h.probe(ctx, false)
	if status != "healthy" {
		status = "degraded"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := struct {
		HealthResponse
		Memory     memoryStats  `json:"memory"`
		Goroutines int          `json:"goroutines"`
		Channels   channelStats `json:"live_channels"`
	}{
		HealthResponse: HealthResponse{
			Status:    status,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   h.version,
			Uptime:    time.Since(h.startTime).Round(time.Second).String(),
			Checks:    checks,
		},
		Memory: memoryStats{
			Alloc:      mem.Alloc,
			TotalAlloc: mem.TotalAlloc,
			Sys:        mem.Sys,
			NumGC:      mem.NumGC,
		},
		Goroutines: runtime.NumGoroutine(),
		Channels: channelStats{
			Rooms:       h.channels.RoomCount(),
			Subscribers: h.channels.SubscriberCount(),
		},
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	WriteJSON(w, code, resp)
}

// probe runs the dependency checks. The collections read only runs when the
// ping succeeded and the caller asked for it; listing collections proves
// reads work, not just connectivity.
func (h *HealthHandler) probe(ctx context.Context, withCollections bool) (string, map[string]Check) {
	checks := make(map[string]Check)

	db := h.checkDatabase(ctx)
	checks["database"] = db
	if db.Status != "healthy" {
		return "unhealthy", checks
	}

	if withCollections {
		coll := h.checkCollections(ctx)
		checks["collections"] = coll
		if coll.Status != "healthy" {
			return "unhealthy", checks
		}
	}

	return "healthy", checks
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{Status: "unhealthy", Message: "Database not configured"}
	}

	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start).String()

	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: latency}
	}
	return Check{Status: "healthy", Latency: latency}
}

func (h *HealthHandler) checkCollections(ctx context.Context) Check {
	start := time.Now()
	names, err := h.db.CollectionNames(ctx)
	latency := time.Since(start).String()

	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: latency}
	}
	return Check{Status: "healthy", Message: strings.Join(names, ", "), Latency: latency}
}

// RegisterRoutes mounts the probes at their conventional paths.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}
