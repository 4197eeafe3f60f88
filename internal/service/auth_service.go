package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/pkg/crypto"
	jwtpkg "hackhub/teamhub/pkg/jwt"
)

// TokenSet represents a set of tokens returned after authentication.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RegisterInput struct {
	Username string
	Password string
	FullName string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*TokenSet, error)
	// RefreshToken exchanges a refresh token for a new pair. The presented
	// refresh token is consumed and cannot be replayed.
	RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error)
	// Logout revokes the access token described by claims and, when given,
	// the refresh token.
	Logout(ctx context.Context, claims *jwtpkg.Claims, refreshToken string) error
	// EnsureAdmin creates the account when missing and gives it the admin role.
	EnsureAdmin(ctx context.Context, username, password string) (*model.User, error)
}

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

// NormalizeUsername lower-cases a telegram handle and strips a leading '@'.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "@"))
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     repository.TokenStore
	jwtManager *jwtpkg.Manager
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens repository.TokenStore,
	jwtManager *jwtpkg.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	return s.createUser(ctx, in, model.RoleUser)
}

func (s *authService) createUser(ctx context.Context, in RegisterInput, role model.Role) (*model.User, error) {
	// 1. Validate input
	username := NormalizeUsername(in.Username)
	if !usernamePattern.MatchString(username) {
		return nil, newError(ErrValidation, "username must be 3-32 characters of a-z, 0-9 or _")
	}
	if len(in.Password) < minPasswordLength {
		return nil, errorf(ErrValidation, "password must be at least %d characters", minPasswordLength)
	}

	// 2. Handle not taken
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	// 3. Create user
	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &model.User{
		TelegramUsername: username,
		PasswordHash:     hash,
		Role:             role,
		FullName:         strings.TrimSpace(in.FullName),
		Contacts:         model.Contacts{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, translateWrite(err, ErrUsernameTaken, "create user")
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("username", username))
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*TokenSet, error) {
	user, err := s.userRepo.GetByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error) {
	claims, err := s.jwtManager.ValidateType(refreshToken, jwtpkg.TokenTypeRefresh)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	owner, ok, err := s.tokens.ConsumeRefresh(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh session: %w", err)
	}
	if !ok || owner.String() != claims.Subject {
		return nil, ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, owner)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, claims *jwtpkg.Claims, refreshToken string) error {
	if err := s.tokens.RevokeAccess(ctx, claims.ID, claims.Remaining(time.Now())); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if refreshToken == "" {
		return nil
	}
	refresh, err := s.jwtManager.ValidateType(refreshToken, jwtpkg.TokenTypeRefresh)
	if err != nil || refresh.Subject != claims.Subject {
		return ErrRefreshTokenInvalid
	}
	if err := s.tokens.DeleteRefresh(ctx, refresh.ID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, NormalizeUsername(username))
	switch {
	case err == nil:
		if user.IsAdmin() {
			return user, nil
		}
		if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{"role": model.RoleAdmin}); err != nil {
			return nil, fmt.Errorf("failed to promote admin: %w", err)
		}
		user.Role = model.RoleAdmin
		return user, nil
	case isNotFound(err):
		return s.createUser(ctx, RegisterInput{Username: username, Password: password}, model.RoleAdmin)
	default:
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenSet, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, refreshClaims, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.tokens.SaveRefresh(ctx, refreshClaims.ID, user.ID, s.jwtManager.RefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("failed to store refresh session: %w", err)
	}

	return &TokenSet{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// ensure authService implements AuthService
var _ AuthService = (*authService)(nil)

