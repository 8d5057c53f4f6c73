package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Jarecamang/ParkingPassport/internal/api/middleware"
	"github.com/Jarecamang/ParkingPassport/internal/ratelimit"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{
			name:       "no forwarded header uses remote addr",
			remoteAddr: "198.51.100.4:51234",
			want:       "198.51.100.4",
		},
		{
			name:       "single proxy hop",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "client-supplied prefix is ignored",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "6.6.6.6, 203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "empty trailing entry falls back to remote addr",
			remoteAddr: "198.51.100.4:51234",
			forwarded:  "6.6.6.6,",
			want:       "198.51.100.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, middleware.ClientIP(r))
		})
	}
}

// A caller cannot escape its window by rewriting its own forwarded header:
// only the hop the proxy appends identifies the client.
func TestRateLimit_SpoofedForwardedHeaderSharesOneWindow(t *testing.T) {
	limiter := ratelimit.New(time.Minute, 5)
	handler := middleware.RateLimit(limiter, "Too many attempts")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	allowed := 0
	for i := 0; i < 20; i++ {
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.RemoteAddr = "10.0.0.1:40000"
		r.Header.Set("X-Forwarded-For", fmt.Sprintf("172.16.0.%d, 203.0.113.7", i))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code == http.StatusOK {
			allowed++
		} else {
			assert.Equal(t, http.StatusTooManyRequests, w.Code)
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestRateLimit_DistinctClientsHaveIndependentWindows(t *testing.T) {
	limiter := ratelimit.New(time.Minute, 1)
	handler := middleware.RateLimit(limiter, "Too many attempts")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	for _, addr := range []string{"198.51.100.1:1000", "198.51.100.2:1000"} {
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
