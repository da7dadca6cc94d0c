package throttle_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpgate/pkg/redis"
	"github.com/dmitrymomot/totpgate/pkg/throttle"
)

// newRedisStore runs the store against an in-process Redis server.
func newRedisStore(t *testing.T) (*throttle.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://" + srv.Addr() + "/0",
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return throttle.NewRedisStore(client, "test:"+uuid.NewString()), srv
}

func TestRedisStore_Transitions(t *testing.T) {
	t.Parallel()
	store, _ := newRedisStore(t)
	ctx := context.Background()
	now := time.UnixMilli(1_735_722_000_000)

	for range testConfig.MaxTries {
		allowed, err := store.Attempt(ctx, throttle.KeyspaceIdentity, "testuser", now, testConfig)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := store.Attempt(ctx, throttle.KeyspaceIdentity, "testuser", now, testConfig)
	require.NoError(t, err)
	assert.False(t, allowed)

	rec, ok, err := store.Lookup(ctx, throttle.KeyspaceIdentity, "testuser")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testConfig.MaxTries+1, rec.Count)
	assert.True(t, now.Equal(rec.Last))

	later := now.Add(testConfig.Window)
	allowed, err = store.Attempt(ctx, throttle.KeyspaceIdentity, "testuser", later, testConfig)
	require.NoError(t, err)
	assert.True(t, allowed)

	rec, ok, err = store.Lookup(ctx, throttle.KeyspaceIdentity, "testuser")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, rec.Count)
	assert.Equal(t, 1, store.Size(throttle.KeyspaceIdentity))
}

func TestRedisStore_SweepAndClear(t *testing.T) {
	t.Parallel()
	store, _ := newRedisStore(t)
	ctx := context.Background()
	now := time.UnixMilli(1_735_722_000_000)

	_, err := store.Attempt(ctx, throttle.KeyspaceIdentity, "old-user", now, testConfig)
	require.NoError(t, err)
	_, err = store.Attempt(ctx, throttle.KeyspaceOrigin, "10.0.0.1", now, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Size(throttle.KeyspaceOrigin))

	_, err = store.Attempt(ctx, throttle.KeyspaceIdentity, "new-user", now.Add(testConfig.Window+time.Second), testConfig)
	require.NoError(t, err)

	_, ok, err := store.Lookup(ctx, throttle.KeyspaceIdentity, "old-user")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Size(throttle.KeyspaceIdentity))
	assert.Equal(t, 0, store.Size(throttle.KeyspaceOrigin))

	require.NoError(t, store.Clear(ctx, "new-user"))
	assert.Equal(t, 0, store.Size(throttle.KeyspaceIdentity))
}

func TestRedisStore_WithGuard(t *testing.T) {
	t.Parallel()
	store, _ := newRedisStore(t)
	ctx := context.Background()
	clock := newFakeClock()

	guard, err := throttle.New(testConfig, throttle.WithStore(store), throttle.WithClock(clock.Now), throttle.WithSleep((&sleepRecorder{}).Sleep))
	require.NoError(t, err)

	results := make([]bool, 0, testConfig.MaxTries+1)
	for range testConfig.MaxTries + 1 {
		results = append(results, guard.Check(ctx, "10.0.0.1", throttle.KeyspaceOrigin))
	}
	assert.Equal(t, []bool{true, true, true, false}, results)

	require.NoError(t, guard.Clear(ctx, "10.0.0.1"))
	assert.True(t, guard.Check(ctx, "10.0.0.1", throttle.KeyspaceOrigin))
}

func TestRedisStore_UnknownKeyspace(t *testing.T) {
	t.Parallel()

	store := throttle.NewRedisStore(nil, "")
	_, err := store.Attempt(context.Background(), throttle.Keyspace("device"), "x", time.Now(), testConfig)
	assert.ErrorIs(t, err, throttle.ErrUnknownKeyspace)
	assert.Zero(t, store.Size(throttle.KeyspaceIdentity))
}

func TestRedisStore_ServerDown(t *testing.T) {
	t.Parallel()
	store, srv := newRedisStore(t)
	srv.Close()

	_, err := store.Attempt(context.Background(), throttle.KeyspaceIdentity, "testuser", time.Now(), testConfig)
	assert.ErrorIs(t, err, throttle.ErrStoreUnavailable)
}
