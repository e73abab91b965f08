package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhvi/provider-directory/internal/domain/providers"
	redisclient "github.com/fhvi/provider-directory/internal/infrastructure/clients/redis"
)

func newTestAdapter(t *testing.T) (providers.CacheProvider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisclient.NewClientFromAddr(mr.Addr())
	t.Cleanup(func() { client.Close() })
	return NewRedisAdapter(client), mr
}

func TestRedisAdapter_SetAndGet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "providers:list", []byte(`{"count":3}`), time.Minute))

	got, err := adapter.Get(ctx, "providers:list")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"count":3}`), got)
}

func TestRedisAdapter_GetMissingKey(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "nothing-here")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestRedisAdapter_TTLExpiry(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "short-lived", []byte("v"), time.Second))

	mr.FastForward(2 * time.Second)

	_, err := adapter.Get(ctx, "short-lived")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "key", []byte("v"), time.Minute))
	require.NoError(t, adapter.Delete(ctx, "key"))

	_, err := adapter.Get(ctx, "key")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}
