package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestLimitMiddleware(t *testing.T) {
	t.Parallel()

	limiter := NewIPRateLimiter(rate.Limit(0.001), 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, call("10.0.0.1:4000"))
	require.Equal(t, http.StatusOK, call("10.0.0.1:4001"))
	require.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:4002"))
	require.Equal(t, http.StatusOK, call("10.0.0.2:4000"))
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[::1]:8080"
	require.Equal(t, "::1", clientIP(req))

	req.RemoteAddr = "pipe"
	require.Equal(t, "pipe", clientIP(req))
}
