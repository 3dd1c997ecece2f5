package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestNewClientInvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{
			name: "invalid scheme",
			url:  "invalid://url",
		},
		{
			name: "empty URL",
			url:  "",
		},
		{
			name: "unreachable server",
			url:  "redis://127.0.0.1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "test", zap.NewNop())
			assert.Error(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestClientSetGet(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	err := client.Set(ctx, "key", "value", time.Minute)
	require.NoError(t, err)

	val, err := client.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", val)
}

func TestClientGetMiss(t *testing.T) {
	_, client := setupTestRedis(t)

	_, err := client.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsCacheMiss(err))
}

func TestClientDelete(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, client.Delete(ctx, "key"))

	n, err := client.Exists(ctx, "key")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClientIncrExpire(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	v, err := client.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = client.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	require.NoError(t, client.Expire(ctx, "counter", time.Minute))

	// The counter disappears once the window passes
	mr.FastForward(2 * time.Minute)
	n, err := client.Exists(ctx, "counter")
	require.NoError(t, err)
	assert.Zero(t, n)
}
