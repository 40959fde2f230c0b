package session

import (
	"testing"
	"time"

	"github.com/folio-space/core/internal/database/databasetest"
	"github.com/folio-space/core/internal/models"
	jwtpkg "github.com/folio-space/core/internal/pkg/jwt"
	"github.com/stretchr/testify/require"
)

func TestIssueValidateRevoke(t *testing.T) {
	db := databasetest.New(t)
	store := NewStore(db, jwtpkg.NewSigner("secret"), 0)
	require.Equal(t, DefaultTTL, store.TTL())

	token, row, err := store.Issue("1.2.3.4", "curl")
	require.NoError(t, err)
	require.NotEmpty(t, row.ID)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), row.ExpiresAt, time.Minute)

	sid, ok, err := store.Validate(token)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, row.ID, sid)

	require.NoError(t, store.Revoke(sid))
	_, ok, err = store.Validate(token)
	require.NoError(t, err)
	require.False(t, ok)

	require.ErrorIs(t, store.Revoke(sid), ErrNotFound)
}

func TestValidate_RejectsForeignAndSentinelTokens(t *testing.T) {
	db := databasetest.New(t)
	store := NewStore(db, jwtpkg.NewSigner("secret"), time.Hour)

	for _, tok := range []string{"", "authenticated", "a.b.c"} {
		_, ok, err := store.Validate(tok)
		require.NoError(t, err)
		require.False(t, ok, tok)
	}

	// signed with the right key but no backing row
	forged, err := jwtpkg.NewSigner("secret").Sign("00000000-0000-0000-0000-000000000000", time.Hour)
	require.NoError(t, err)
	_, ok, err := store.Validate(forged)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidate_ExpiredRow(t *testing.T) {
	db := databasetest.New(t)
	store := NewStore(db, jwtpkg.NewSigner("secret"), time.Hour)

	token, row, err := store.Issue("", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.AdminSession{}).Where("id = ?", row.ID).
		Update("expires_at", time.Now().Add(-time.Second)).Error)

	_, ok, err := store.Validate(token)
	require.NoError(t, err)
	require.False(t, ok)

	n, err := store.Prune()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}
