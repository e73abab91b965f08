package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fhvi/provider-directory/internal/domain/providers"
	apperrors "github.com/fhvi/provider-directory/pkg/errors"
	"github.com/fhvi/provider-directory/pkg/retry"
)

const (
	defaultIPAPIBaseURL    = "http://ip-api.com/json"
	defaultLocateCacheTTL  = time.Hour
	defaultHTTPTimeout     = 8 * time.Second
	defaultLocateAttempts  = 3
	defaultLocateBackoff   = 200 * time.Millisecond
	defaultLocateMaxDelay  = 2 * time.Second
	defaultLocateTotalTime = 10 * time.Second
)

// IPAPIProvider resolves client coordinates from their IP address using the
// ip-api.com JSON endpoint. Results are cached per IP when a cache is
// available; lookups retry transient failures with backoff.
type IPAPIProvider struct {
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewIPAPIProvider creates a new IP geolocation provider.
func NewIPAPIProvider(cache providers.CacheProvider) providers.LocationProvider {
	return NewIPAPIProviderWithOptions(cache, defaultIPAPIBaseURL, nil)
}

// NewIPAPIProviderWithOptions allows overriding the base URL and HTTP client
// (used for tests).
func NewIPAPIProviderWithOptions(cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.LocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultIPAPIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &IPAPIProvider{
		httpClient: httpClient,
		cache:      cache,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate resolves coordinates for the given client IP.
func (p *IPAPIProvider) Locate(ctx context.Context, ip string) (*providers.Coordinates, error) {
	trimmed := strings.TrimSpace(ip)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("ip is required")
	}

	cacheKey := "geo:locate:" + trimmed
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var coords providers.Coordinates
			if err := json.Unmarshal(cached, &coords); err == nil && (coords.Latitude != 0 || coords.Longitude != 0) {
				return &coords, nil
			}
		}
	}

	var coords *providers.Coordinates
	cfg := retry.Config{
		MaxAttempts:     defaultLocateAttempts,
		InitialDelay:    defaultLocateBackoff,
		MaxDelay:        defaultLocateMaxDelay,
		BackoffFactor:   2.0,
		MaxTotalTimeout: defaultLocateTotalTime,
	}
	err := retry.Do(ctx, cfg, func() error {
		var lookupErr error
		coords, lookupErr = p.lookup(ctx, trimmed)
		return lookupErr
	})
	if err != nil {
		return nil, apperrors.NewExternalError("ip geolocation lookup failed", err)
	}

	if p.cache != nil {
		if payload, err := json.Marshal(*coords); err == nil {
			_ = p.cache.Set(ctx, cacheKey, payload, defaultLocateCacheTTL)
		}
	}

	return coords, nil
}

func (p *IPAPIProvider) lookup(ctx context.Context, ip string) (*providers.Coordinates, error) {
	endpoint := p.baseURL + "/" + url.PathEscape(ip) + "?fields=status,message,lat,lon"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build locate request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("locate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("locate request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read locate response: %w", err)
	}

	var parsed ipAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse locate response: %w", err)
	}
	if parsed.Status != "success" {
		return nil, fmt.Errorf("locate declined: %s", parsed.Message)
	}

	return &providers.Coordinates{
		Latitude:  parsed.Lat,
		Longitude: parsed.Lon,
	}, nil
}
