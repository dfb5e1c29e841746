// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerWindow(t *testing.T) {
	t.Parallel()

	limit := PerWindow(100, 20, 30*time.Second)
	assert.Equal(t, 100, limit.Rate)
	assert.Equal(t, 20, limit.Burst)
	assert.Equal(t, 30*time.Second, limit.Period)

	// a non-positive window falls back to a minute
	assert.Equal(t, time.Minute, PerWindow(100, 20, 0).Period)
	assert.Equal(t, time.Minute, PerWindow(100, 20, -time.Second).Period)
}

func TestRateLimiter_FallbackEnforcesBurst(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(nil, RateLimitConfig{
		Limit: PerWindow(60, 2, time.Minute),
	})

	handler := rl.Handler(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/v1/calculations", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do())
	require.Equal(t, http.StatusOK, do())

	third := httptest.NewRequest(http.MethodGet, "/v1/calculations", nil)
	third.RemoteAddr = "203.0.113.7:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, third)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// a different client has its own bucket
	other := httptest.NewRequest(http.MethodGet, "/v1/calculations", nil)
	other.RemoteAddr = "198.51.100.9:1234"
	ow := httptest.NewRecorder()
	handler.ServeHTTP(ow, other)
	assert.Equal(t, http.StatusOK, ow.Code)
}
