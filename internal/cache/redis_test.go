package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/meal-planner/internal/config"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := testStruct{Name: "Alice", Age: 30}
	require.NoError(t, cache.Set(ctx, "user:1", expected, time.Minute))

	var actual testStruct
	found, err := cache.Get(ctx, "user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out testStruct
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Db.Set(ctx, "bad", []byte("not-json"), time.Minute).Err())

	var out testStruct
	found, err := cache.Get(ctx, "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	revoked, err := cache.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, cache.RevokeToken(ctx, "jti-1", "uid-1", 10*time.Minute))

	revoked, err = cache.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 10*time.Minute, mr.TTL("blacklist:jti-1"))

	var rec Revocation
	found, err := cache.Get(ctx, "blacklist:jti-1", &rec)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "uid-1", rec.UserUID)

	mr.FastForward(11 * time.Minute)

	revoked, err = cache.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeToken_AlreadyExpired(t *testing.T) {
	cache, mr := setupTestCache(t)

	require.NoError(t, cache.RevokeToken(context.Background(), "jti-old", "uid", -time.Second))
	assert.False(t, mr.Exists("blacklist:jti-old"))
}

func TestIsRevoked_RedisDown(t *testing.T) {
	cache, mr := setupTestCache(t)
	mr.Close()

	_, err := cache.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}

func TestClaimToken_OnlyOnce(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	first, err := cache.ClaimToken(ctx, "jti-r", "uid-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := cache.ClaimToken(ctx, "jti-r", "uid-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, second)

	revoked, err := cache.IsRevoked(ctx, "jti-r")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, time.Hour, mr.TTL("blacklist:jti-r"))
}

func TestClaimToken_Concurrent(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	const workers = 8
	results := make(chan bool, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := cache.ClaimToken(ctx, "jti-race", "uid-1", time.Hour)
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	claimed := 0
	for ok := range results {
		if ok {
			claimed++
		}
	}
	assert.Equal(t, 1, claimed)
}

func TestRevokeUser(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	_, found, err := cache.UserRevokedAt(ctx, "uid-1")
	require.NoError(t, err)
	assert.False(t, found)

	before := time.Now().UTC()
	require.NoError(t, cache.RevokeUser(ctx, "uid-1", 24*time.Hour))

	at, found, err := cache.UserRevokedAt(ctx, "uid-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, at.Before(before.Truncate(time.Second)))
	assert.Equal(t, 24*time.Hour, mr.TTL("revoked_user:uid-1"))
}

func TestInitServerInvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	}

	cache, err := InitServer(context.Background(), cfg)
	assert.Nil(t, cache)
	assert.Error(t, err)
}
