package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/Jarecamang/ParkingPassport/internal/ratelimit"
)

// RateLimit rejects requests over the limiter's window budget with 429 and a
// Retry-After hint. Rejection happens before the wrapped handler runs, so a
// limited login attempt never reaches the password verifier.
func RateLimit(limiter *ratelimit.Limiter, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retryAfter := limiter.Allow(ClientIP(r))
			if !ok {
				seconds := int(retryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
				writeJSONMessage(w, http.StatusTooManyRequests, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP identifies the caller for rate limiting. The service runs behind
// a single trusted proxy, so only the last X-Forwarded-For hop — the one the
// proxy appended — can be believed; everything before it is client-supplied.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		entries := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(entries[len(entries)-1]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
