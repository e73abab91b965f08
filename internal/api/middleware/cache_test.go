package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhvi/provider-directory/internal/adapters/cache"
	redisclient "github.com/fhvi/provider-directory/internal/infrastructure/clients/redis"
)

func newCacheMiddleware(t *testing.T) *CacheMiddleware {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisclient.NewClientFromAddr(mr.Addr())
	t.Cleanup(func() { client.Close() })
	return NewCacheMiddleware(cache.NewRedisAdapter(client), nil)
}

func TestCacheMiddleware_MissThenHit(t *testing.T) {
	m := newCacheMiddleware(t)

	var upstreamCalls int
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":3}`)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers?q=clinic", nil))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, upstreamCalls)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers?q=clinic", nil))
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, upstreamCalls)
	assert.Equal(t, `{"count":3}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCacheMiddleware_DistinctQueriesGetDistinctEntries(t *testing.T) {
	m := newCacheMiddleware(t)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.URL.RawQuery)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers?country=vietnam", nil))
	require.Equal(t, "country=vietnam", rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers?country=thailand", nil))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "country=thailand", rec.Body.String())
}

func TestCacheMiddleware_UnconfiguredRouteBypassed(t *testing.T) {
	m := newCacheMiddleware(t)

	var upstreamCalls int
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
		fmt.Fprint(w, "OK")
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, upstreamCalls)
}

func TestCacheMiddleware_LocationNeverSharedBetweenClients(t *testing.T) {
	m := newCacheMiddleware(t)

	// Echoes the forwarded client IP, like the location endpoint whose
	// response is derived from it
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.Header.Get("X-Forwarded-For"))
	}))

	reqA := httptest.NewRequest(http.MethodGet, "/api/location", nil)
	reqA.Header.Set("X-Forwarded-For", "203.0.113.7")
	recA := httptest.NewRecorder()
	handler.ServeHTTP(recA, reqA)
	require.Equal(t, "203.0.113.7", recA.Body.String())

	reqB := httptest.NewRequest(http.MethodGet, "/api/location", nil)
	reqB.Header.Set("X-Forwarded-For", "198.51.100.9")
	recB := httptest.NewRecorder()
	handler.ServeHTTP(recB, reqB)

	// Client B must get its own location, not a replay of client A's
	assert.Equal(t, "198.51.100.9", recB.Body.String())
	assert.Empty(t, recB.Header().Get("X-Cache"))
}

func TestCacheMiddleware_ErrorsNotCached(t *testing.T) {
	m := newCacheMiddleware(t)

	var upstreamCalls int
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid serviceId parameter"}`)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/providers?serviceId=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, upstreamCalls)
}
