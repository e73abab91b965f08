package repositories

import (
	"context"

	"github.com/fhvi/provider-directory/internal/domain/entities"
)

// ProviderRepository defines read access to the resident provider dataset.
// The dataset is loaded once; implementations return the same records on
// every call and callers must not mutate them.
type ProviderRepository interface {
	// GetByID returns the provider with the given id, or a NotFound error.
	GetByID(ctx context.Context, id string) (*entities.Provider, error)

	// All returns every provider in dataset order.
	All(ctx context.Context) []*entities.Provider

	// Count returns the total number of providers.
	Count(ctx context.Context) int
}
