package services

import (
	"strings"

	"github.com/fhvi/provider-directory/internal/domain/entities"
)

// FilterService applies structured filter criteria to provider lists. Each
// populated criterion is ANDed with the rest; unset criteria are no-ops.
// Filtering is stable and non-destructive.
type FilterService struct {
	openHours *OpenHoursEvaluator
}

// NewFilterService creates a filter service backed by the given open-hours
// evaluator.
func NewFilterService(openHours *OpenHoursEvaluator) *FilterService {
	return &FilterService{openHours: openHours}
}

// Apply returns the providers satisfying every populated criterion.
func (s *FilterService) Apply(providers []*entities.Provider, criteria entities.FilterCriteria) []*entities.Provider {
	matched := make([]*entities.Provider, 0, len(providers))
	for _, p := range providers {
		if s.matches(p, criteria) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (s *FilterService) matches(p *entities.Provider, c entities.FilterCriteria) bool {
	// Country is stored inconsistently cased in the dataset, so it compares
	// case-insensitively. City, district, category and provider type are
	// facet-driven exact values.
	if c.Country != "" && !strings.EqualFold(p.Country, c.Country) {
		return false
	}
	if c.City != "" && p.City != c.City {
		return false
	}
	if c.District != "" && p.District != c.District {
		return false
	}
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if c.ProviderType != "" && p.ProviderType != c.ProviderType {
		return false
	}

	if c.ServiceID != nil && !p.HasService(*c.ServiceID) {
		return false
	}

	// Supplying either of workDay/workHour activates the open-hours check;
	// the missing one falls back to the current wall-clock value inside the
	// evaluator. The coupling is intentional and matches the filter surface.
	if c.WorkDay != nil || c.WorkHour != nil {
		if !s.openHours.IsOpenAt(p, c.WorkDay, c.WorkHour) {
			return false
		}
	}

	if c.HasDistanceConstraint() {
		// Providers without a usable location can never satisfy a distance
		// constraint.
		if !p.Geo.HasLocation() {
			return false
		}
		dist := distanceKm(
			c.UserLocation.Latitude, c.UserLocation.Longitude,
			p.Geo.Latitude, p.Geo.Longitude,
		)
		if dist > *c.MaxDistanceKm {
			return false
		}
	}

	return true
}
