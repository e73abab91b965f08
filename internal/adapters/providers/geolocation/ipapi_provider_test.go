package geolocation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fhvi/provider-directory/pkg/errors"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, fmt.Errorf("miss")
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func TestIPAPIProvider_Locate(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/1.2.3.4", r.URL.Path)
		assert.Equal(t, "status,message,lat,lon", r.URL.Query().Get("fields"))
		fmt.Fprint(w, `{"status":"success","lat":21.0278,"lon":105.8342}`)
	}))
	defer server.Close()

	provider := NewIPAPIProviderWithOptions(nil, server.URL, server.Client())

	coords, err := provider.Locate(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.InDelta(t, 21.0278, coords.Latitude, 0.0001)
	assert.InDelta(t, 105.8342, coords.Longitude, 0.0001)
	assert.Equal(t, 1, requests)
}

func TestIPAPIProvider_CachesPerIP(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"status":"success","lat":10.8231,"lon":106.6297}`)
	}))
	defer server.Close()

	provider := NewIPAPIProviderWithOptions(newMemoryCache(), server.URL, server.Client())

	for i := 0; i < 3; i++ {
		coords, err := provider.Locate(context.Background(), "5.6.7.8")
		require.NoError(t, err)
		assert.InDelta(t, 10.8231, coords.Latitude, 0.0001)
	}
	assert.Equal(t, 1, requests)
}

func TestIPAPIProvider_DeclinedLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"fail","message":"private range"}`)
	}))
	defer server.Close()

	provider := NewIPAPIProviderWithOptions(nil, server.URL, server.Client())

	_, err := provider.Locate(context.Background(), "10.0.0.1")
	assert.ErrorContains(t, err, "private range")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
}

func TestIPAPIProvider_RetriesTransientFailures(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"status":"success","lat":13.7563,"lon":100.5018}`)
	}))
	defer server.Close()

	provider := NewIPAPIProviderWithOptions(nil, server.URL, server.Client())

	coords, err := provider.Locate(context.Background(), "9.9.9.9")
	require.NoError(t, err)
	assert.InDelta(t, 13.7563, coords.Latitude, 0.0001)
	assert.Equal(t, 3, requests)
}

func TestIPAPIProvider_EmptyIP(t *testing.T) {
	provider := NewIPAPIProviderWithOptions(nil, "", nil)

	_, err := provider.Locate(context.Background(), "  ")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}
