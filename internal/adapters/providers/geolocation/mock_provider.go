package geolocation

import (
	"context"
	"fmt"

	"github.com/fhvi/provider-directory/internal/domain/providers"
)

// MockLocationProvider returns a fixed coordinate for every lookup, or fails
// when configured to. Used in tests and as the default provider when no real
// geolocation backend is configured.
type MockLocationProvider struct {
	Coordinates providers.Coordinates
	Fail        bool
}

// NewMockLocationProvider creates a mock provider centered on Hanoi.
func NewMockLocationProvider() *MockLocationProvider {
	return &MockLocationProvider{
		Coordinates: providers.Coordinates{Latitude: 21.0278, Longitude: 105.8342},
	}
}

// Locate returns the configured coordinates, ignoring the IP.
func (m *MockLocationProvider) Locate(_ context.Context, _ string) (*providers.Coordinates, error) {
	if m.Fail {
		return nil, fmt.Errorf("location unavailable")
	}
	coords := m.Coordinates
	return &coords, nil
}
