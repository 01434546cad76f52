package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	r := newFakeRedis()
	s := NewRedisStore(r, time.Hour)
	ctx := context.Background()

	_, ok := s.Email(ctx, "sess-1")
	require.False(t, ok)

	require.NoError(t, s.SetEmail(ctx, "sess-1", "jane@example.com"))

	email, ok := s.Email(ctx, "sess-1")
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", email)
	assert.Equal(t, time.Hour, r.ttls["storefront:session:sess-1:email"])
}

func TestRedisStore_RejectsEmptySessionID(t *testing.T) {
	s := NewRedisStore(newFakeRedis(), 0)
	require.Error(t, s.SetEmail(context.Background(), "", "x@example.com"))
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok := s.Email(ctx, "sess-1")
	require.False(t, ok)

	require.NoError(t, s.SetEmail(ctx, "sess-1", "jane@example.com"))

	email, ok := s.Email(ctx, "sess-1")
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", email)

	// Sessions are isolated.
	_, ok = s.Email(ctx, "sess-2")
	assert.False(t, ok)
}
