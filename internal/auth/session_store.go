package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore maps opaque session tokens to user ids. Implementations must
// be safe for concurrent use. Delete is idempotent: removing an unknown token
// is not an error.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID) (token string, err error)
	Lookup(ctx context.Context, token string) (userID uuid.UUID, ok bool, err error)
	Delete(ctx context.Context, token string) error
}

// NewToken generates an opaque 32-byte url-safe session token.
func NewToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// MemoryStore is a volatile in-process SessionStore. Sessions do not survive
// a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]uuid.UUID
}

// Ensure MemoryStore implements SessionStore
var _ SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]uuid.UUID)}
}

// Create issues a new token bound to userID.
func (s *MemoryStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token, nil
}

// Lookup returns the user id bound to token, if any.
func (s *MemoryStore) Lookup(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}
	s.mu.RLock()
	userID, ok := s.sessions[token]
	s.mu.RUnlock()
	return userID, ok, nil
}

// Delete removes the token binding.
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// RedisStore keeps sessions in Redis so multiple processes can share them.
// Unlike cache.Client it propagates errors: a login whose session failed to
// store must fail, not silently hand out a dead token.
type RedisStore struct {
	client *redis.Client
}

// Ensure RedisStore implements SessionStore
var _ SessionStore = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Create issues a new token bound to userID. Sessions carry no TTL.
func (s *RedisStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+token, userID.String(), 0).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Lookup returns the user id bound to token, if any.
func (s *RedisStore) Lookup(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}
	val, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("lookup session: %w", err)
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parse session user id: %w", err)
	}
	return userID, true, nil
}

// Delete removes the token binding.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
