package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Jarecamang/ParkingPassport/internal/api/middleware"
	"github.com/Jarecamang/ParkingPassport/internal/config"
	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/Jarecamang/ParkingPassport/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type LoginRequest struct {
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "Password is required")
		return
	}

	client := domain.SessionClient{
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}

	token, err := h.authService.Login(r.Context(), req.Password, client)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(w, http.StatusUnauthorized, "Invalid password")
		case errors.Is(err, domain.ErrCredentialNotFound):
			respondError(w, http.StatusNotFound, "Admin settings not found")
		default:
			log.Printf("ERROR [AuthHandler.Login] %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to verify password")
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.cfg.SessionTTL().Seconds())))
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.authService.Logout(r.Context(), session.ID); err != nil {
		log.Printf("ERROR [AuthHandler.Logout] %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to logout")
		return
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Settings reports whether an admin password is configured, so the login page
// can tell a fresh install apart from a broken one.
func (h *AuthHandler) Settings(w http.ResponseWriter, r *http.Request) {
	hasPassword, err := h.authService.HasCredential(r.Context())
	if err != nil {
		log.Printf("ERROR [AuthHandler.Settings] %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to get admin settings")
		return
	}
	if !hasPassword {
		respondError(w, http.StatusNotFound, "Admin settings not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"hasPassword": true})
}

func (h *AuthHandler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	authenticated := false

	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		_, err := h.authService.Authenticate(r.Context(), cookie.Value)
		switch {
		case err == nil:
			authenticated = true
		case errors.Is(err, service.ErrUnauthenticated):
			// Stale cookie; report anonymous.
		default:
			log.Printf("ERROR [AuthHandler.AuthStatus] %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to check auth status")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]bool{"isAuthenticated": authenticated})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.authService.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case service.IsPolicyViolation(err):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(w, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, domain.ErrCredentialNotFound):
			respondError(w, http.StatusNotFound, "Admin settings not found")
		default:
			log.Printf("ERROR [AuthHandler.ChangePassword] %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to update password")
		}
		return
	}

	log.Printf("admin password changed")
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}
