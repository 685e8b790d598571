//go:build integration

package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Redis 7 is the first release with EXPIRE NX.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisCounter(t *testing.T) {
	client := setupTestRedis(t)
	counter := NewRedisCounter(client)
	ctx := context.Background()

	windows := []time.Duration{time.Minute, 5 * time.Second, 5 * time.Second}
	for i, window := range windows {
		got, err := counter.Incr(ctx, "ratelimit:198.51.100.7", window)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), got)
	}

	// The first hit opens the window; later hits leave its expiry alone.
	ttl, err := client.TTL(ctx, "ratelimit:198.51.100.7").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
	assert.LessOrEqual(t, ttl, time.Minute)

	_, err = counter.Incr(ctx, "ratelimit:198.51.100.8", time.Second)
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		n, err := client.Exists(ctx, "ratelimit:198.51.100.8").Result()
		return err == nil && n == 0
	}, 5*time.Second, 100*time.Millisecond)

	got, err := counter.Incr(ctx, "ratelimit:198.51.100.8", time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
