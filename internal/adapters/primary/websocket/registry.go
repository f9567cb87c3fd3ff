// Package websocket carries the live side of ticket conversations: one
// channel endpoint per ticket, a registry that fans persisted messages out to
// everyone watching that ticket, and an echo loop for inbound frames.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
	"github.com/lorrc/customer-service-backend/internal/infrastructure/metrics"
)

// Registry tracks which clients are watching which ticket and pushes message
// events to them. All methods are safe for concurrent use.
type Registry struct {
	// rooms maps ticket IDs to the set of subscribed clients
	rooms map[string]map[*Client]bool

	// mu protects rooms. Publish sends while holding the read lock so an
	// Unsubscribe cannot close a send channel mid-delivery.
	mu sync.RWMutex

	logger *slog.Logger
}

// Ensure Registry implements the EventBroadcaster interface.
var _ ports.EventBroadcaster = (*Registry)(nil)

// NewRegistry creates an empty broadcast registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		rooms:  make(map[string]map[*Client]bool),
		logger: logger.With("component", "broadcast_registry"),
	}
}

// Subscribe adds a client to a ticket's room. Subscribing the same client
// twice is a no-op.
func (r *Registry) Subscribe(ticketID string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[ticketID]
	if room == nil {
		room = make(map[*Client]bool)
		r.rooms[ticketID] = room
		metrics.BroadcastRoomsCurrent.Inc()
	}
	if room[client] {
		return
	}
	room[client] = true
	metrics.BroadcastSubscribersCurrent.Inc()

	r.logger.Debug("client subscribed",
		"ticket_id", ticketID,
		"room_size", len(room),
	)
}

// Unsubscribe removes a client from a ticket's room and closes its send
// channel. The channel is closed only after the client is out of the map, so
// no concurrent Publish can enqueue to a closed channel. Calling Unsubscribe
// again for the same client is a no-op.
func (r *Registry) Unsubscribe(ticketID string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[ticketID]
	if !ok || !room[client] {
		return
	}

	delete(room, client)
	if len(room) == 0 {
		delete(r.rooms, ticketID)
		metrics.BroadcastRoomsCurrent.Dec()
	}
	metrics.BroadcastSubscribersCurrent.Dec()

	client.closeSend()

	r.logger.Debug("client unsubscribed",
		"ticket_id", ticketID,
		"room_size", len(room),
	)
}

// Publish pushes an event to every subscriber of a ticket. It runs on the
// caller's goroutine: when it returns, the event is queued for every client
// that was subscribed at the time of the call. A subscriber with a full
// buffer has the event dropped; that never affects the other subscribers and
// never surfaces to the caller. Publishing to a ticket with no subscribers is
// a no-op.
func (r *Registry) Publish(ticketID string, event domain.MessageEvent) {
	metrics.BroadcastPublishesTotal.Inc()

	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("failed to marshal event",
			"ticket_id", ticketID,
			"error", err,
		)
		return
	}

	// The read lock is held across the send loop. Each send is non-blocking,
	// so the lock is held only briefly, and no client can be unsubscribed
	// (and its channel closed) while deliveries are in flight.
	r.mu.RLock()
	room := r.rooms[ticketID]

	delivered, dropped := 0, 0
	for client := range room {
		if client.enqueue(payload) {
			delivered++
		} else {
			dropped++
		}
	}
	r.mu.RUnlock()

	if delivered > 0 {
		metrics.BroadcastDeliveriesTotal.WithLabelValues("delivered").Add(float64(delivered))
	}
	if dropped > 0 {
		metrics.BroadcastDeliveriesTotal.WithLabelValues("dropped").Add(float64(dropped))
		r.logger.Warn("dropped event for slow subscribers",
			"ticket_id", ticketID,
			"delivered", delivered,
			"dropped", dropped,
		)
		return
	}

	r.logger.Debug("event published",
		"ticket_id", ticketID,
		"delivered", delivered,
	)
}

// CloseAll empties every room and closes every client's send channel. Used on
// shutdown; each writer drains, sends a close frame, and exits.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	closed := 0
	for ticketID, room := range r.rooms {
		for client := range room {
			client.closeSend()
			closed++
		}
		delete(r.rooms, ticketID)
	}
	metrics.BroadcastRoomsCurrent.Set(0)
	metrics.BroadcastSubscribersCurrent.Set(0)

	if closed > 0 {
		r.logger.Info("closed all websocket subscriptions", "clients", closed)
	}
}

// ClientCount returns the number of clients subscribed to a ticket.
func (r *Registry) ClientCount(ticketID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[ticketID])
}

// RoomCount returns the number of tickets with at least one subscriber.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// SubscriberCount returns the number of connected clients across all rooms.
func (r *Registry) SubscriberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, room := range r.rooms {
		total += len(room)
	}
	return total
}
