package dataset

import (
	"context"

	"github.com/fhvi/provider-directory/internal/domain/entities"
	"github.com/fhvi/provider-directory/internal/domain/repositories"
	apperrors "github.com/fhvi/provider-directory/pkg/errors"
)

// Repository is the in-memory ProviderRepository over a loaded dataset.
// The backing slice is shared, never copied; all query operations treat it
// as read-only.
type Repository struct {
	providers []*entities.Provider
	byID      map[string]*entities.Provider
}

// NewRepository indexes the dataset records by id.
func NewRepository(ds *entities.Dataset) repositories.ProviderRepository {
	byID := make(map[string]*entities.Provider, len(ds.Data))
	for _, p := range ds.Data {
		byID[p.ID] = p
	}
	return &Repository{
		providers: ds.Data,
		byID:      byID,
	}
}

// GetByID returns the provider with the given id.
func (r *Repository) GetByID(_ context.Context, id string) (*entities.Provider, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("provider not found: " + id)
	}
	return p, nil
}

// All returns every provider in dataset order.
func (r *Repository) All(_ context.Context) []*entities.Provider {
	return r.providers
}

// Count returns the total number of providers.
func (r *Repository) Count(_ context.Context) int {
	return len(r.providers)
}
