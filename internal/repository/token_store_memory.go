package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func (e memEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

type memoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (s *memoryTokenStore) put(key string, userID uuid.UUID, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	s.entries[key] = memEntry{userID: userID, expiresAt: now.Add(ttl)}
}

// sweepLocked drops expired entries so the map does not grow with dead tokens.
func (s *memoryTokenStore) sweepLocked(now time.Time) {
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
		}
	}
}

func (s *memoryTokenStore) RevokeAccess(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.put(revokedAccessPrefix+jti, uuid.Nil, ttl)
	return nil
}

func (s *memoryTokenStore) IsAccessRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[revokedAccessPrefix+jti]
	if !ok {
		return false, nil
	}
	if e.expired(s.now()) {
		delete(s.entries, revokedAccessPrefix+jti)
		return false, nil
	}
	return true, nil
}

func (s *memoryTokenStore) SaveRefresh(_ context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	s.put(refreshPrefix+jti, userID, ttl)
	return nil
}

func (s *memoryTokenStore) ConsumeRefresh(_ context.Context, jti string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := refreshPrefix + jti
	e, ok := s.entries[key]
	if !ok {
		return uuid.Nil, false, nil
	}
	delete(s.entries, key)
	if e.expired(s.now()) {
		return uuid.Nil, false, nil
	}
	return e.userID, true, nil
}

func (s *memoryTokenStore) DeleteRefresh(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, refreshPrefix+jti)
	return nil
}
