package entities

// FilterCriteria is one query's worth of structured filter state. Every field
// is optional; the zero value matches everything. Instances are replaced
// wholesale on each change, never mutated in place.
type FilterCriteria struct {
	Country       string
	City          string
	District      string
	Category      string
	ProviderType  string
	ServiceID     *int
	WorkDay       *int // 0=Monday .. 6=Sunday
	WorkHour      *int // 0..23
	UserLocation  *Geo
	MaxDistanceKm *float64
}

// HasDistanceConstraint reports whether the distance filter is active.
// Both a user location and a maximum distance are required together.
func (c FilterCriteria) HasDistanceConstraint() bool {
	return c.UserLocation != nil && c.MaxDistanceKm != nil
}

// ResultItem is a provider annotated with an optional computed distance,
// as emitted by the query pipeline. DistanceKm is set iff a user location
// was supplied and the provider has a usable geo point.
type ResultItem struct {
	*Provider
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}
