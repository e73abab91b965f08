package handlers

import (
	"net"
	"net/http"
	"strings"

	"github.com/fhvi/provider-directory/internal/domain/providers"
	"github.com/fhvi/provider-directory/internal/infrastructure/observability"
)

// LocationHandler resolves the caller's physical location. Acquisition can
// fail or be declined; that is a recoverable condition and clients are
// expected to drop their distance criterion when it happens.
type LocationHandler struct {
	provider providers.LocationProvider
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(provider providers.LocationProvider) *LocationHandler {
	return &LocationHandler{provider: provider}
}

// Locate handles GET /api/location.
func (h *LocationHandler) Locate(w http.ResponseWriter, r *http.Request) {
	coords, err := h.provider.Locate(r.Context(), clientIP(r))
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("location acquisition failed")
		respondWithError(w, http.StatusBadGateway, "failed to acquire location")
		return
	}

	respondWithJSON(w, http.StatusOK, coords)
}

// clientIP extracts the originating client IP, preferring the first entry of
// X-Forwarded-For when the service sits behind a proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
