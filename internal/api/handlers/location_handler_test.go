package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhvi/provider-directory/internal/adapters/providers/geolocation"
	"github.com/fhvi/provider-directory/internal/domain/providers"
)

func TestLocate_Success(t *testing.T) {
	h := NewLocationHandler(&geolocation.MockLocationProvider{
		Coordinates: providers.Coordinates{Latitude: 21.0278, Longitude: 105.8342},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/location", nil)
	rec := httptest.NewRecorder()
	h.Locate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var coords providers.Coordinates
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &coords))
	assert.InDelta(t, 21.0278, coords.Latitude, 0.0001)
	assert.InDelta(t, 105.8342, coords.Longitude, 0.0001)
}

func TestLocate_Failure(t *testing.T) {
	h := NewLocationHandler(&geolocation.MockLocationProvider{Fail: true})

	req := httptest.NewRequest(http.MethodGet, "/api/location", nil)
	rec := httptest.NewRecorder()
	h.Locate(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to acquire location", body["error"])
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/location", nil)
	req.RemoteAddr = "203.0.113.7:54321"
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	assert.Equal(t, "198.51.100.4", clientIP(req))
}
