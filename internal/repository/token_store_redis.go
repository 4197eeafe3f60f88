package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) RevokeAccess(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedAccessPrefix+jti, 1, ttl).Err()
}

func (s *redisTokenStore) IsAccessRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedAccessPrefix+jti).Result()
	return n > 0, err
}

func (s *redisTokenStore) SaveRefresh(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, refreshPrefix+jti, userID.String(), ttl).Err()
}

func (s *redisTokenStore) ConsumeRefresh(ctx context.Context, jti string) (uuid.UUID, bool, error) {
	val, err := s.client.GetDel(ctx, refreshPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("corrupt refresh session %s: %w", jti, err)
	}
	return userID, true, nil
}

func (s *redisTokenStore) DeleteRefresh(ctx context.Context, jti string) error {
	return s.client.Del(ctx, refreshPrefix+jti).Err()
}
