package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store caches the one value the storefront remembers across a
// session: the customer's email, written by the login/guest-checkout
// flow and read back when the checkout form is built.
type Store interface {
	Email(ctx context.Context, sessionID string) (string, bool)
	SetEmail(ctx context.Context, sessionID, email string) error
}

// RedisClient is the subset of go-redis the store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps session emails in Redis with a TTL, so a session's
// cached value ages out on its own.
type RedisStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedisStore(client RedisClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Email(ctx context.Context, sessionID string) (string, bool) {
	v, err := s.client.Get(ctx, emailKey(sessionID)).Result()
	if err != nil {
		return "", false
	}
	return v, v != ""
}

func (s *RedisStore) SetEmail(ctx context.Context, sessionID, email string) error {
	if sessionID == "" {
		return errors.New("empty session id")
	}
	return s.client.Set(ctx, emailKey(sessionID), email, s.ttl).Err()
}

func emailKey(sessionID string) string {
	return "storefront:session:" + sessionID + ":email"
}

// MemoryStore is the in-process fallback used in tests and local runs
// without Redis.
type MemoryStore struct {
	mu     sync.Mutex
	emails map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{emails: map[string]string{}}
}

func (s *MemoryStore) Email(_ context.Context, sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.emails[sessionID]
	return v, ok && v != ""
}

func (s *MemoryStore) SetEmail(_ context.Context, sessionID, email string) error {
	if sessionID == "" {
		return errors.New("empty session id")
	}
	s.mu.Lock()
	s.emails[sessionID] = email
	s.mu.Unlock()
	return nil
}
