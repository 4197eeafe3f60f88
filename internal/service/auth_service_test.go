package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/internal/service"
	"hackhub/teamhub/internal/testutil"
	jwtpkg "hackhub/teamhub/pkg/jwt"
)

type authEnv struct {
	ctx    context.Context
	auth   service.AuthService
	tokens repository.TokenStore
	jwt    *jwtpkg.Manager
	users  repository.UserRepository
}

func setupAuthEnv(t *testing.T) authEnv {
	t.Helper()
	users := repository.NewPGUserRepository(testutil.NewDB(t))
	tokens := repository.NewMemoryTokenStore()
	manager := jwtpkg.NewManager("test-signing-key", "teamhub-test", 15*time.Minute, time.Hour)
	return authEnv{
		ctx:    context.Background(),
		auth:   service.NewAuthService(users, tokens, manager, zap.NewNop()),
		tokens: tokens,
		jwt:    manager,
		users:  users,
	}
}

func TestRegister(t *testing.T) {
	env := setupAuthEnv(t)

	user, err := env.auth.Register(env.ctx, service.RegisterInput{
		Username: "@Alice_Dev",
		Password: "supersecret",
		FullName: " Alice ",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice_dev", user.TelegramUsername)
	assert.Equal(t, "Alice", user.FullName)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	_, err = env.auth.Register(env.ctx, service.RegisterInput{Username: "alice_dev", Password: "supersecret"})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)

	_, err = env.auth.Register(env.ctx, service.RegisterInput{Username: "bob", Password: "short"})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = env.auth.Register(env.ctx, service.RegisterInput{Username: "no spaces", Password: "supersecret"})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestLogin(t *testing.T) {
	env := setupAuthEnv(t)
	user, err := env.auth.Register(env.ctx, service.RegisterInput{Username: "carol", Password: "supersecret"})
	require.NoError(t, err)

	_, err = env.auth.Login(env.ctx, "carol", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = env.auth.Login(env.ctx, "nobody", "supersecret")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	tokens, err := env.auth.Login(env.ctx, "@Carol", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.EqualValues(t, 900, tokens.ExpiresIn)

	claims, err := env.jwt.ValidateType(tokens.AccessToken, jwtpkg.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, string(model.RoleUser), claims.Role)
}

func TestRefreshToken_SingleUse(t *testing.T) {
	env := setupAuthEnv(t)
	_, err := env.auth.Register(env.ctx, service.RegisterInput{Username: "dave", Password: "supersecret"})
	require.NoError(t, err)
	first, err := env.auth.Login(env.ctx, "dave", "supersecret")
	require.NoError(t, err)

	second, err := env.auth.RefreshToken(env.ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = env.auth.RefreshToken(env.ctx, first.RefreshToken)
	assert.ErrorIs(t, err, service.ErrRefreshTokenInvalid)

	// Access tokens are not accepted as refresh tokens.
	_, err = env.auth.RefreshToken(env.ctx, second.AccessToken)
	assert.ErrorIs(t, err, service.ErrRefreshTokenInvalid)

	_, err = env.auth.RefreshToken(env.ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestLogout(t *testing.T) {
	env := setupAuthEnv(t)
	_, err := env.auth.Register(env.ctx, service.RegisterInput{Username: "erin", Password: "supersecret"})
	require.NoError(t, err)
	tokens, err := env.auth.Login(env.ctx, "erin", "supersecret")
	require.NoError(t, err)

	claims, err := env.jwt.ValidateType(tokens.AccessToken, jwtpkg.TokenTypeAccess)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(env.ctx, claims, tokens.RefreshToken))

	revoked, err := env.tokens.IsAccessRevoked(env.ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = env.auth.RefreshToken(env.ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, service.ErrRefreshTokenInvalid)
}

func TestEnsureAdmin(t *testing.T) {
	env := setupAuthEnv(t)

	admin, err := env.auth.EnsureAdmin(env.ctx, "root_admin", "supersecret")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	again, err := env.auth.EnsureAdmin(env.ctx, "root_admin", "ignored-password")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	user, err := env.auth.Register(env.ctx, service.RegisterInput{Username: "promoted", Password: "supersecret"})
	require.NoError(t, err)
	promoted, err := env.auth.EnsureAdmin(env.ctx, "promoted", "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, promoted.ID)

	stored, err := env.users.GetByID(env.ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())
}
