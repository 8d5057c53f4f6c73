package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/Jarecamang/ParkingPassport/internal/service"
)

type contextKey string

const SessionKey contextKey = "session"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "pp_session"

// Auth requires a live admin session. A missing, destroyed or expired
// session is rejected; it is never downgraded to anonymous access.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				writeUnauthenticated(w)
				return
			}

			session, err := authService.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					log.Printf("ERROR [middleware.Auth] session lookup failed: %v", err)
					writeJSONMessage(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				writeUnauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthenticated(w http.ResponseWriter) {
	writeJSONMessage(w, http.StatusUnauthorized, "Authentication required")
}

func writeJSONMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetSession returns the authenticated session stored by Auth.
func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*domain.Session)
	return session, ok
}
