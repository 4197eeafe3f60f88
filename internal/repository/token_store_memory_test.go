package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryStore(now *time.Time) *memoryTokenStore {
	s := NewMemoryTokenStore().(*memoryTokenStore)
	s.now = func() time.Time { return *now }
	return s
}

func TestMemoryTokenStore_RevokeAccess(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestMemoryStore(&now)

	revoked, err := s.IsAccessRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.RevokeAccess(ctx, "jti-1", time.Minute))
	revoked, err = s.IsAccessRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = s.IsAccessRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, s.entries)

	// Already expired tokens are not recorded.
	require.NoError(t, s.RevokeAccess(ctx, "jti-2", 0))
	assert.Empty(t, s.entries)
}

func TestMemoryTokenStore_RefreshIsSingleUse(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestMemoryStore(&now)
	userID := uuid.New()

	require.NoError(t, s.SaveRefresh(ctx, "r-1", userID, time.Hour))

	owner, ok, err := s.ConsumeRefresh(ctx, "r-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, owner)

	_, ok, err = s.ConsumeRefresh(ctx, "r-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryTokenStore_RefreshExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTestMemoryStore(&now)

	require.NoError(t, s.SaveRefresh(ctx, "r-1", uuid.New(), time.Hour))
	require.NoError(t, s.SaveRefresh(ctx, "r-2", uuid.New(), time.Hour))
	require.NoError(t, s.DeleteRefresh(ctx, "r-2"))

	_, ok, err := s.ConsumeRefresh(ctx, "r-2")
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(2 * time.Hour)
	_, ok, err = s.ConsumeRefresh(ctx, "r-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
