package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig sizes a RateLimiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration // sweep frequency for idle visitors
	TTL               time.Duration // idle time before a visitor is dropped
}

// RateLimiter applies a per-client token bucket, keyed by IP. Buckets of
// idle clients are swept in the background so the map cannot grow without
// bound.
type RateLimiter struct {
	mu       sync.RWMutex
	visitors map[string]*visitor

	rate  rate.Limit
	burst int

	stop     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.BurstSize,
		stop:     make(chan struct{}),
	}

	every := cfg.CleanupInterval
	if every <= 0 {
		every = time.Minute
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 3 * time.Minute
	}
	go rl.sweep(every, ttl)

	return rl
}

// Allow reports whether a request from ip fits its bucket right now.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.visitor(ip).Allow()
}

// visitor returns the bucket for ip, creating it on first sight. The
// read-locked fast path covers the common case of a returning client.
func (rl *RateLimiter) visitor(ip string) *rate.Limiter {
	rl.mu.RLock()
	v, ok := rl.visitors[ip]
	rl.mu.RUnlock()

	if !ok {
		rl.mu.Lock()
		if v, ok = rl.visitors[ip]; !ok {
			v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
			rl.visitors[ip] = v
		}
		rl.mu.Unlock()
	}

	v.lastSeen.Store(time.Now().UnixNano())
	return v.limiter
}

func (rl *RateLimiter) sweep(every, ttl time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-ttl).UnixNano()
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if v.lastSeen.Load() < cutoff {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop ends the background sweep. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Middleware rejects requests over the client's budget with a 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(getClientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too many requests. Please try again later.","code":"RATE_LIMITED"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getClientIP resolves the client address, trusting proxy headers when
// present. X-Forwarded-For may carry a whole hop chain; the first entry is
// the original client.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
