package session

import (
	"errors"
	"strings"
	"time"

	"github.com/folio-space/core/internal/models"
	jwtpkg "github.com/folio-space/core/internal/pkg/jwt"
	"gorm.io/gorm"
)

const DefaultTTL = 24 * time.Hour

var ErrNotFound = errors.New("session not found")

// Store issues and checks DB-backed admin sessions.
type Store struct {
	db     *gorm.DB
	signer *jwtpkg.Signer
	ttl    time.Duration
}

func NewStore(db *gorm.DB, signer *jwtpkg.Signer, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{db: db, signer: signer, ttl: ttl}
}

// TTL is the lifetime of issued sessions.
func (s *Store) TTL() time.Duration { return s.ttl }

// Issue creates a DB session and signs a token bound to that session.
func (s *Store) Issue(ip, ua string) (string, *models.AdminSession, error) {
	row := &models.AdminSession{
		IP:        strings.TrimSpace(ip),
		UA:        strings.TrimSpace(ua),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(row).Error; err != nil {
		return "", nil, err
	}

	token, err := s.signer.Sign(row.ID, s.ttl)
	if err != nil {
		_ = s.db.Delete(row).Error
		return "", nil, err
	}
	return token, row, nil
}

// Validate returns the live session id behind token.
// Any parse failure, expiry or revocation yields ok=false with a nil error.
func (s *Store) Validate(token string) (string, bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false, nil
	}
	claims, err := s.signer.Parse(token)
	if err != nil {
		return "", false, nil
	}
	active, err := s.IsActive(claims.SessionID)
	if err != nil || !active {
		return "", false, err
	}
	return claims.SessionID, true, nil
}

func (s *Store) IsActive(sessionID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.AdminSession{}).
		Where("id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Revoke(sessionID string) error {
	now := time.Now()
	res := s.db.Model(&models.AdminSession{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune deletes expired and revoked rows older than the TTL.
func (s *Store) Prune() (int64, error) {
	cutoff := time.Now().Add(-s.ttl)
	res := s.db.Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", time.Now(), cutoff).
		Delete(&models.AdminSession{})
	return res.RowsAffected, res.Error
}
