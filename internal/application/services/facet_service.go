package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fhvi/provider-directory/internal/domain/entities"
)

// FacetService derives the dependent filter-option lists that drive
// progressive narrowing. Facets are always computed from the full dataset or
// a parent-scoped subset of it, never from the current result set: they
// describe what else is selectable, not what matches today's filter.
type FacetService struct{}

// NewFacetService creates a new facet service.
func NewFacetService() *FacetService {
	return &FacetService{}
}

// Build derives all facet lists from the dataset. selectedCountry scopes the
// city list (case-insensitive); selectedCity scopes the district list, which
// stays empty until a city is chosen.
func (s *FacetService) Build(providers []*entities.Provider, selectedCountry, selectedCity string) entities.Facets {
	// Labels are Vietnamese-first, so option lists sort under Vietnamese
	// collation rather than byte order.
	c := collate.New(language.Vietnamese)

	return entities.Facets{
		Countries:  s.countries(providers, c),
		Cities:     s.cities(providers, selectedCountry, c),
		Districts:  s.districts(providers, selectedCity, c),
		Categories: s.categories(providers),
		Services:   s.services(providers, c),
	}
}

func (s *FacetService) countries(providers []*entities.Provider, c *collate.Collator) []entities.FacetOption {
	seen := make(map[string]struct{})
	var options []entities.FacetOption

	for _, p := range providers {
		if p.Country == "" {
			continue
		}
		key := strings.ToLower(p.Country)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		label := capitalize(p.Country)
		engLabel := label
		if p.CountryEngName != "" {
			engLabel = capitalize(p.CountryEngName)
		}
		options = append(options, entities.FacetOption{
			Value:    p.Country,
			Label:    label,
			EngLabel: engLabel,
		})
	}

	sortOptions(options, c)
	return options
}

func (s *FacetService) cities(providers []*entities.Provider, selectedCountry string, c *collate.Collator) []entities.FacetOption {
	seen := make(map[string]struct{})
	var options []entities.FacetOption

	for _, p := range providers {
		if selectedCountry != "" && !strings.EqualFold(p.Country, selectedCountry) {
			continue
		}
		if p.City == "" {
			continue
		}
		if _, dup := seen[p.City]; dup {
			continue
		}
		seen[p.City] = struct{}{}

		engLabel := p.City
		if p.EngCity != "" {
			engLabel = p.EngCity
		}
		options = append(options, entities.FacetOption{
			Value:    p.City,
			Label:    p.City,
			EngLabel: engLabel,
		})
	}

	sortOptions(options, c)
	return options
}

func (s *FacetService) districts(providers []*entities.Provider, selectedCity string, c *collate.Collator) []entities.FacetOption {
	// The district facet is strictly dependent on a chosen city; without one
	// it is unavailable, not "all districts".
	if selectedCity == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var options []entities.FacetOption

	for _, p := range providers {
		if p.City != selectedCity || p.District == "" {
			continue
		}
		if _, dup := seen[p.District]; dup {
			continue
		}
		seen[p.District] = struct{}{}

		engLabel := p.District
		if p.EngDistrict != "" {
			engLabel = p.EngDistrict
		}
		options = append(options, entities.FacetOption{
			Value:    p.District,
			Label:    p.District,
			EngLabel: engLabel,
		})
	}

	sortOptions(options, c)
	return options
}

func (s *FacetService) categories(providers []*entities.Provider) []string {
	seen := make(map[string]struct{})
	var categories []string

	for _, p := range providers {
		if p.Category == "" {
			continue
		}
		if _, dup := seen[p.Category]; dup {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	sort.Strings(categories)
	return categories
}

func (s *FacetService) services(providers []*entities.Provider, c *collate.Collator) []entities.ServiceOption {
	byID := make(map[int]entities.ServiceOption)

	for _, p := range providers {
		for _, svc := range p.AllServices() {
			if svc.ID == 0 {
				continue
			}
			name := svc.LocalName
			if name == "" {
				name = svc.Name
			}
			engName := svc.Name
			if engName == "" {
				engName = svc.LocalName
			}
			byID[svc.ID] = entities.ServiceOption{
				ID:      svc.ID,
				Name:    name,
				EngName: engName,
			}
		}
	}

	options := make([]entities.ServiceOption, 0, len(byID))
	for _, opt := range byID {
		options = append(options, opt)
	}
	sort.Slice(options, func(i, j int) bool {
		if cmp := c.CompareString(options[i].Name, options[j].Name); cmp != 0 {
			return cmp < 0
		}
		return options[i].ID < options[j].ID
	})
	return options
}

func sortOptions(options []entities.FacetOption, c *collate.Collator) {
	sort.SliceStable(options, func(i, j int) bool {
		return c.CompareString(options[i].Label, options[j].Label) < 0
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
