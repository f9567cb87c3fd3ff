package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, remoteAddr string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 10, BurstSize: 3})
	defer rl.Stop()

	handler := rl.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		recorder := doRequest(handler, "1.2.3.4:1111", nil)
		require.Equal(t, http.StatusOK, recorder.Code, "request %d should pass", i+1)
	}
}

func TestRateLimiter_BlocksWhenExhausted(t *testing.T) {
	// Refill is effectively zero, so only the single burst token exists.
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	defer rl.Stop()

	handler := rl.Middleware(okHandler())

	recorder := doRequest(handler, "1.2.3.4:1111", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(handler, "1.2.3.4:1111", nil)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "RATE_LIMITED", body["code"])
}

func TestRateLimiter_SeparatesClients(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	defer rl.Stop()

	handler := rl.Middleware(okHandler())

	require.Equal(t, http.StatusOK, doRequest(handler, "1.2.3.4:1111", nil).Code)

	// A different address still has its own burst; the first is now dry.
	assert.Equal(t, http.StatusOK, doRequest(handler, "5.6.7.8:2222", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "1.2.3.4:1111", nil).Code)
}

func TestRateLimiter_KeysByForwardedClient(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	defer rl.Stop()

	handler := rl.Middleware(okHandler())

	// Same proxy address, two distinct forwarded clients.
	xffA := map[string]string{"X-Forwarded-For": "198.51.100.4"}
	xffB := map[string]string{"X-Forwarded-For": "203.0.113.7"}

	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:3333", xffA).Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:3333", xffB).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:3333", xffA).Code)
}

func TestRateLimiter_SweepDropsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         1,
		CleanupInterval:   10 * time.Millisecond,
		TTL:               10 * time.Millisecond,
	})
	defer rl.Stop()

	require.True(t, rl.Allow("1.2.3.4"))

	assert.Eventually(t, func() bool {
		rl.mu.RLock()
		defer rl.mu.RUnlock()
		return len(rl.visitors) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1})

	rl.Stop()
	rl.Stop()
}
