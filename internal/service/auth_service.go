package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Jarecamang/ParkingPassport/internal/config"
	"github.com/Jarecamang/ParkingPassport/internal/domain"
	"github.com/Jarecamang/ParkingPassport/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUnauthenticated = errors.New("authentication required")
)

// changedPasswordCost is the bcrypt work factor for admin-chosen passwords,
// deliberately stronger than the default used for the factory seed.
const changedPasswordCost = 12

type AuthService struct {
	credRepo    repository.CredentialRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
}

func NewAuthService(credRepo repository.CredentialRepository, sessionRepo repository.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		credRepo:    credRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// Login verifies the admin password and issues a session token. The returned
// token is a signed reference to a server-side session row; the row, not the
// token, is the session.
func (s *AuthService) Login(ctx context.Context, password string, client domain.SessionClient) (string, error) {
	cred, err := s.credRepo.Get(ctx)
	if err != nil {
		return "", err
	}

	if !VerifyPassword(password, cred) {
		return "", ErrInvalidPassword
	}

	clientJSON, err := json.Marshal(client)
	if err != nil {
		return "", err
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New(),
		ExpiresAt: now.Add(s.cfg.SessionTTL()),
		Client:    datatypes.JSON(clientJSON),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}

	return s.signToken(session)
}

func (s *AuthService) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.ID.String(),
		"exp": session.ExpiresAt.Unix(),
		"iat": session.CreatedAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SessionSecret))
}

// Authenticate resolves a token to its live session. A missing, destroyed or
// expired session is ErrUnauthenticated even when the token itself still
// carries a valid signature.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		// Lazy reaping; a failed delete still rejects the request.
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return nil, ErrUnauthenticated
	}

	return session, nil
}

func (s *AuthService) parseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	sid, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sid claim")
	}

	return uuid.Parse(sid)
}

// HasCredential reports whether the admin credential row exists. The hash
// itself never leaves the service layer.
func (s *AuthService) HasCredential(ctx context.Context) (bool, error) {
	if _, err := s.credRepo.Get(ctx); err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Logout destroys the session row. Destroying a session that is already gone
// succeeds; only a persistence failure surfaces.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// ChangePassword validates the new password against policy, verifies the
// current one and persists a fresh hash over the singleton credential.
func (s *AuthService) ChangePassword(ctx context.Context, current, newPassword string) error {
	if err := validateNewPassword(current, newPassword); err != nil {
		return err
	}

	cred, err := s.credRepo.Get(ctx)
	if err != nil {
		return err
	}

	if !VerifyPassword(current, cred) {
		return ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), changedPasswordCost)
	if err != nil {
		return err
	}

	return s.credRepo.UpdateHash(ctx, string(hash))
}
