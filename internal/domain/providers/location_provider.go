package providers

import "context"

// Coordinates represents geographical coordinates.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationProvider resolves a caller's physical location. Implementations
// may call out to an external geolocation service and can fail or decline;
// callers must treat a failure as "no location" and drop any distance
// criterion that depended on it.
type LocationProvider interface {
	// Locate resolves coordinates for the given client IP address.
	Locate(ctx context.Context, ip string) (*Coordinates, error)
}
