package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenStore keeps short-lived token state outside the relational store:
// revoked access-token ids and live refresh sessions, both keyed by JWT id.
// Implementations: Redis (production) or in-memory (local dev / single instance).
type TokenStore interface {
	// RevokeAccess marks an access token id as unusable for ttl.
	RevokeAccess(ctx context.Context, jti string, ttl time.Duration) error
	IsAccessRevoked(ctx context.Context, jti string) (bool, error)

	SaveRefresh(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error
	// ConsumeRefresh atomically removes a refresh session and returns its owner.
	// ok is false when the session is unknown, expired or already consumed.
	ConsumeRefresh(ctx context.Context, jti string) (userID uuid.UUID, ok bool, err error)
	DeleteRefresh(ctx context.Context, jti string) error
}

const (
	revokedAccessPrefix = "auth:revoked:"
	refreshPrefix       = "auth:refresh:"
)
