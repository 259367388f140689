package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/starkbrilliance/smartharvest/internal/constants"
	"github.com/starkbrilliance/smartharvest/internal/models"
	"github.com/starkbrilliance/smartharvest/internal/repository"
	"github.com/starkbrilliance/smartharvest/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidPassword       = errors.New("invalid password")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionExpired        = errors.New("session expired or logged out")
	ErrFailedToCreateSession = errors.New("failed to create session")
)

// AuthService issues and validates the single-tenant bearer sessions.
type AuthService struct {
	sessionRepo  repository.SessionRepository
	passwordHash []byte
}

// NewAuthService hashes the shared password once and keeps only the hash.
func NewAuthService(sessionRepo repository.SessionRepository, sharedPassword string) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(sharedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash shared password: %w", err)
	}

	return &AuthService{
		sessionRepo:  sessionRepo,
		passwordHash: hash,
	}, nil
}

// Login checks the shared password and creates a fresh session.
func (s *AuthService) Login(password string) (*models.Session, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	token, err := utils.GenerateSessionToken()
	if err != nil {
		return nil, ErrFailedToCreateSession
	}

	session := &models.Session{
		SessionToken:    token,
		IsAuthenticated: true,
		ExpiresAt:       time.Now().Add(constants.SessionTTL),
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, ErrFailedToCreateSession
	}

	return session, nil
}

// Logout invalidates the session for the given token.
func (s *AuthService) Logout(token string) error {
	if err := s.sessionRepo.Invalidate(token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to invalidate session: %w", err)
	}
	return nil
}

// ValidateToken looks the session up fresh on every call. A session is valid
// iff it is still authenticated and has not expired.
func (s *AuthService) ValidateToken(token string) (*models.Session, error) {
	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if !session.ValidAt(time.Now()) {
		return nil, ErrSessionExpired
	}

	return session, nil
}
