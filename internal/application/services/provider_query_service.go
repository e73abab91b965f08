package services

import (
	"context"
	"sort"
	"sync"

	"github.com/fhvi/provider-directory/internal/domain/entities"
	"github.com/fhvi/provider-directory/internal/domain/repositories"
	"github.com/fhvi/provider-directory/internal/infrastructure/observability"
)

// ProviderQueryService composes search, structured filtering, distance
// annotation and sorting into the final result list. It also holds the
// current criteria snapshot for embedded consumers and enforces the
// country → city → district cascade when a parent selection changes.
type ProviderQueryService struct {
	repo   repositories.ProviderRepository
	search *SearchService
	filter *FilterService
	facets *FacetService

	mu       sync.RWMutex
	query    string
	criteria entities.FilterCriteria
}

// NewProviderQueryService creates a query service over the given repository.
func NewProviderQueryService(
	repo repositories.ProviderRepository,
	search *SearchService,
	filter *FilterService,
	facets *FacetService,
) *ProviderQueryService {
	return &ProviderQueryService{
		repo:   repo,
		search: search,
		filter: filter,
		facets: facets,
	}
}

// Execute runs the full pipeline for one query: text search over the whole
// dataset, structured filtering, distance annotation, then distance sorting
// when a user location is present. The result is recomputed wholesale; no
// state is read or written.
func (s *ProviderQueryService) Execute(ctx context.Context, query string, criteria entities.FilterCriteria) []entities.ResultItem {
	ctx, span := observability.StartSpan(ctx, "query.execute")
	defer span.End()

	matched := s.search.Search(s.repo.All(ctx), query)
	matched = s.filter.Apply(matched, criteria)

	results := make([]entities.ResultItem, len(matched))
	for i, p := range matched {
		item := entities.ResultItem{Provider: p}
		if criteria.UserLocation != nil && p.Geo.HasLocation() {
			d := distanceKm(
				criteria.UserLocation.Latitude, criteria.UserLocation.Longitude,
				p.Geo.Latitude, p.Geo.Longitude,
			)
			item.DistanceKm = &d
		}
		results[i] = item
	}

	// Without a user location the dataset order stands. With one, annotated
	// providers sort nearest-first and providers without a computed distance
	// keep their relative order at the tail.
	if criteria.UserLocation != nil {
		sort.SliceStable(results, func(i, j int) bool {
			di, dj := results[i].DistanceKm, results[j].DistanceKm
			if di != nil && dj != nil {
				return *di < *dj
			}
			return di != nil && dj == nil
		})
	}

	return results
}

// GetByID returns a single provider by id.
func (s *ProviderQueryService) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	return s.repo.GetByID(ctx, id)
}

// Count returns the total number of providers in the dataset.
func (s *ProviderQueryService) Count(ctx context.Context) int {
	return s.repo.Count(ctx)
}

// BuildFacets derives facet lists for the given parent selections against
// the full dataset.
func (s *ProviderQueryService) BuildFacets(ctx context.Context, selectedCountry, selectedCity string) entities.Facets {
	return s.facets.Build(s.repo.All(ctx), selectedCountry, selectedCity)
}

// Results runs the pipeline with the currently held query and criteria.
func (s *ProviderQueryService) Results(ctx context.Context) []entities.ResultItem {
	s.mu.RLock()
	query := s.query
	criteria := s.criteria
	s.mu.RUnlock()
	return s.Execute(ctx, query, criteria)
}

// Facets derives facet lists scoped by the currently held selections.
func (s *ProviderQueryService) Facets(ctx context.Context) entities.Facets {
	s.mu.RLock()
	country := s.criteria.Country
	city := s.criteria.City
	s.mu.RUnlock()
	return s.BuildFacets(ctx, country, city)
}

// Criteria returns a snapshot of the current criteria.
func (s *ProviderQueryService) Criteria() entities.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// SetQuery replaces the free-text query.
func (s *ProviderQueryService) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// SetCountry replaces the country selection. Changing the country
// invalidates the dependent city and district selections.
func (s *ProviderQueryService) SetCountry(country string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.criteria.Country != country {
		s.criteria.City = ""
		s.criteria.District = ""
	}
	s.criteria.Country = country
}

// SetCity replaces the city selection. Changing the city invalidates the
// dependent district selection.
func (s *ProviderQueryService) SetCity(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.criteria.City != city {
		s.criteria.District = ""
	}
	s.criteria.City = city
}

// SetDistrict replaces the district selection.
func (s *ProviderQueryService) SetDistrict(district string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.District = district
}

// SetCategory replaces the category selection.
func (s *ProviderQueryService) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Category = category
}

// SetProviderType replaces the provider-type selection.
func (s *ProviderQueryService) SetProviderType(providerType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.ProviderType = providerType
}

// SetService replaces the service selection; nil clears it.
func (s *ProviderQueryService) SetService(serviceID *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.ServiceID = serviceID
}

// SetOpenAt replaces the work-day/work-hour selection; nil values fall back
// to the current wall clock when the other is set.
func (s *ProviderQueryService) SetOpenAt(day, hour *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.WorkDay = day
	s.criteria.WorkHour = hour
}

// SetLocation activates the distance constraint. Both the location and the
// maximum distance are required for the constraint to apply.
func (s *ProviderQueryService) SetLocation(location entities.Geo, maxDistanceKm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.UserLocation = &location
	s.criteria.MaxDistanceKm = &maxDistanceKm
}

// ClearLocation drops the distance constraint entirely. Called when location
// acquisition fails or is declined so the criteria never hold a dangling
// distance filter.
func (s *ProviderQueryService) ClearLocation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.UserLocation = nil
	s.criteria.MaxDistanceKm = nil
}

// Reset clears the query and every criterion.
func (s *ProviderQueryService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.criteria = entities.FilterCriteria{}
}
