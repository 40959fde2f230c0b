package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("invalid password")

// SessionStore issues and revokes admin sessions.
type SessionStore interface {
	Issue(ip, ua string) (string, *models.AdminSession, error)
	Validate(token string) (string, bool, error)
	Revoke(sessionID string) error
	TTL() time.Duration
}

type Service struct {
	password     string
	passwordHash string
	sessions     SessionStore
}

func NewService(cfg config.AdminConfig, sessions SessionStore) *Service {
	return &Service{
		password:     cfg.Password,
		passwordHash: strings.TrimSpace(cfg.PasswordHash),
		sessions:     sessions,
	}
}

// Verify checks the shared admin secret. A configured bcrypt hash takes
// precedence over the plain password; with neither set nothing matches.
func (s *Service) Verify(password string) bool {
	if password == "" {
		return false
	}
	if s.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	}
	if s.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) == 1
}

// Login verifies password and opens a session, returning its signed token.
func (s *Service) Login(password, ip, ua string) (string, error) {
	if !s.Verify(password) {
		return "", ErrInvalidPassword
	}
	token, _, err := s.sessions.Issue(ip, ua)
	return token, err
}

// Logout revokes the session behind token. Unknown tokens are ignored.
func (s *Service) Logout(token string) error {
	sid, ok, err := s.sessions.Validate(token)
	if err != nil || !ok {
		return err
	}
	return s.sessions.Revoke(sid)
}

func (s *Service) TTL() time.Duration { return s.sessions.TTL() }
