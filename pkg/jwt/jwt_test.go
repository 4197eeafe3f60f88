package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", "hackhub", time.Minute, time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "admin")
	require.NoError(t, err)

	claims, err := m.ValidateType(token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.InDelta(t, time.Minute.Seconds(), claims.Remaining(time.Now()).Seconds(), 2)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := NewManager("secret", "hackhub", time.Minute, time.Hour)

	token, claims, err := m.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	require.Equal(t, TokenTypeRefresh, claims.TokenType)

	_, err = m.ValidateType(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenType)
}

func TestValidateRejectsForeignTokens(t *testing.T) {
	m := NewManager("secret", "hackhub", time.Minute, time.Hour)

	otherKey := NewManager("other-secret", "hackhub", time.Minute, time.Hour)
	token, err := otherKey.GenerateAccessToken(uuid.New(), "user")
	require.NoError(t, err)
	_, err = m.Validate(token)
	assert.Error(t, err)

	otherIssuer := NewManager("secret", "someone-else", time.Minute, time.Hour)
	token, err = otherIssuer.GenerateAccessToken(uuid.New(), "user")
	require.NoError(t, err)
	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	m := NewManager("secret", "hackhub", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "user")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}
