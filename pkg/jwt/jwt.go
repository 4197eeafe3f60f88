package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenType    = errors.New("unexpected token type")
)

// Claims extends jwt.RegisteredClaims with the caller's role and token kind.
type Claims struct {
	jwt.RegisteredClaims
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"token_type"`
}

// UserID parses the subject as a user id.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Remaining is the time left before the token expires, zero when already expired.
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

type Manager struct {
	signingKey      []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewManager(signingKey string, issuer string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		signingKey:      []byte(signingKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

func (m *Manager) AccessTokenTTL() time.Duration  { return m.accessTokenTTL }
func (m *Manager) RefreshTokenTTL() time.Duration { return m.refreshTokenTTL }

func (m *Manager) sign(userID uuid.UUID, role string, typ TokenType, ttl time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
		Role:      role,
		TokenType: typ,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", nil, err
	}
	return signed, &claims, nil
}

// GenerateAccessToken creates a signed access token carrying the user's role.
func (m *Manager) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	signed, _, err := m.sign(userID, role, TokenTypeAccess, m.accessTokenTTL)
	return signed, err
}

// GenerateRefreshToken creates a signed refresh token.
// The returned claims carry the JTI the caller stores as a refresh session.
func (m *Manager) GenerateRefreshToken(userID uuid.UUID) (string, *Claims, error) {
	return m.sign(userID, "", TokenTypeRefresh, m.refreshTokenTTL)
}

// Validate parses and validates a token string, returning claims.
func (m *Manager) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Issuer != m.issuer {
		return nil, errors.New("invalid issuer")
	}

	return claims, nil
}

// ValidateType validates the token and requires the given token type.
func (m *Manager) ValidateType(tokenStr string, typ TokenType) (*Claims, error) {
	claims, err := m.Validate(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != typ {
		return nil, ErrTokenType
	}
	return claims, nil
}
