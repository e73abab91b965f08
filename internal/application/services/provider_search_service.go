package services

import (
	"strings"

	"github.com/fhvi/provider-directory/internal/domain/entities"
)

// SearchService performs free-text matching over provider fields and nested
// service names. Matching is case-insensitive substring; there is no
// tokenization or ranking, and the input order is preserved.
type SearchService struct{}

// NewSearchService creates a new search service.
func NewSearchService() *SearchService {
	return &SearchService{}
}

// Search returns the providers matching query. An empty query returns the
// input unchanged. A provider matches when any searched field contains the
// query, or, for queries carrying digits, when the digit-stripped query is a
// substring of a digit-stripped phone number.
func (s *SearchService) Search(providers []*entities.Provider, query string) []*entities.Provider {
	if query == "" {
		return providers
	}

	lowerQuery := strings.ToLower(query)
	numericQuery := stripNonDigits(query)

	matched := make([]*entities.Provider, 0, len(providers))
	for _, p := range providers {
		if s.matches(p, lowerQuery, numericQuery) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (s *SearchService) matches(p *entities.Provider, lowerQuery, numericQuery string) bool {
	for _, field := range []string{
		p.Name, p.EngName,
		p.Address, p.EngAddress,
		p.City, p.EngCity,
		p.District, p.EngDistrict,
		p.Category, p.ProviderType,
	} {
		if containsFold(field, lowerQuery) {
			return true
		}
	}

	if numericQuery != "" {
		for _, phone := range p.PhoneNumber {
			if strings.Contains(stripNonDigits(phone), numericQuery) {
				return true
			}
		}
	}

	for _, svc := range p.Services {
		if containsFold(svc.Name, lowerQuery) || containsFold(svc.LocalName, lowerQuery) {
			return true
		}
	}
	for _, svc := range p.AppliedBenefitServiceDetails {
		if containsFold(svc.Name, lowerQuery) || containsFold(svc.LocalName, lowerQuery) {
			return true
		}
	}

	return false
}

// containsFold reports whether field contains lowerQuery, comparing
// case-insensitively. lowerQuery must already be lower-cased.
func containsFold(field, lowerQuery string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), lowerQuery)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
