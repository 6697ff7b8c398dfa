package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/learnhub/lms-webclient/internal/config"
	"github.com/learnhub/lms-webclient/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"roles": []string{models.RoleTeacher}})

	s := New(token, "teacher@example.com", time.Hour)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, token, s.Token)
	assert.Equal(t, "teacher@example.com", s.Email)
	assert.Equal(t, models.RoleTeacher, s.Role)
	assert.Equal(t, time.Hour, s.ExpiresAt.Sub(s.CreatedAt))
	assert.NotEqual(t, s.ID, New(token, "teacher@example.com", time.Hour).ID)
}

// testStoreContract exercises the behavior every Store shares
func testStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	s := New("token", "student@example.com", time.Minute)

	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Token, got.Token)
	assert.Equal(t, s.Email, got.Email)

	got.Email = "changed@example.com"
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", again.Email)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "missing"))
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	live := New("a", "a@example.com", time.Hour)
	expired := New("b", "b@example.com", time.Hour)
	expired.ExpiresAt = now.Add(-time.Second)
	require.NoError(t, store.Save(ctx, live))
	require.NoError(t, store.Save(ctx, expired))

	_, err := store.Get(ctx, expired.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	stale := New("c", "c@example.com", time.Hour)
	stale.ExpiresAt = now
	require.NoError(t, store.Save(ctx, stale))

	assert.Equal(t, []string{stale.ID}, store.Sweep())
	_, err = store.Get(ctx, live.ID)
	assert.NoError(t, err)
}

func TestRedisStore(t *testing.T) {
	cfg, err := config.LoadTestConfig()
	require.NoError(t, err)
	if cfg.Redis.Host == "" {
		t.Skip("TEST_REDIS_HOST is not set")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())

	store := NewRedisStore(rdb)
	testStoreContract(t, store)

	s := New("token", "student@example.com", time.Minute)
	require.NoError(t, store.Save(ctx, s))
	defer store.Delete(ctx, s.ID)

	ttl, err := rdb.TTL(ctx, redisKeyPrefix+s.ID).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	expired := New("token", "x@example.com", time.Minute)
	expired.ExpiresAt = time.Now().Add(-time.Second)
	assert.Error(t, store.Save(ctx, expired))
}
