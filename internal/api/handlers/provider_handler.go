package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fhvi/provider-directory/internal/application/services"
	"github.com/fhvi/provider-directory/internal/domain/entities"
	"github.com/fhvi/provider-directory/internal/infrastructure/observability"
	apperrors "github.com/fhvi/provider-directory/pkg/errors"
)

// ProviderHandler handles provider directory HTTP requests.
type ProviderHandler struct {
	query   *services.ProviderQueryService
	metrics *observability.Metrics
}

// NewProviderHandler creates a new provider handler.
func NewProviderHandler(query *services.ProviderQueryService, metrics *observability.Metrics) *ProviderHandler {
	return &ProviderHandler{
		query:   query,
		metrics: metrics,
	}
}

// ListProviders handles GET /api/providers. Every filter criterion arrives
// as a query parameter; the full pipeline runs fresh per request.
func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	results := h.query.Execute(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")), criteria)
	if h.metrics != nil {
		observability.RecordQueryMetric(r.Context(), h.metrics, len(results), time.Since(start))
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": results,
		"count":     len(results),
		"total":     h.query.Count(r.Context()),
	})
}

// GetProvider handles GET /api/providers/{id}.
func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	provider, err := h.query.GetByID(r.Context(), providerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "provider not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"provider": provider,
		"services": provider.AllServices(),
	})
}

// GetFacets handles GET /api/facets. The country and city parameters scope
// the dependent city and district lists.
func (h *ProviderHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	city := strings.TrimSpace(r.URL.Query().Get("city"))

	facets := h.query.BuildFacets(r.Context(), country, city)
	respondWithJSON(w, http.StatusOK, facets)
}

// parseCriteria builds filter criteria from request query parameters,
// validating value domains at the boundary.
func parseCriteria(r *http.Request) (entities.FilterCriteria, error) {
	q := r.URL.Query()

	criteria := entities.FilterCriteria{
		Country:      strings.TrimSpace(q.Get("country")),
		City:         strings.TrimSpace(q.Get("city")),
		District:     strings.TrimSpace(q.Get("district")),
		Category:     strings.TrimSpace(q.Get("category")),
		ProviderType: strings.TrimSpace(q.Get("providerType")),
	}

	if raw := q.Get("serviceId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, apperrors.NewValidationError("invalid serviceId parameter")
		}
		criteria.ServiceID = &id
	}

	if raw := q.Get("workDay"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil || day < 0 || day > 6 {
			return criteria, apperrors.NewValidationError("workDay must be between 0 (Monday) and 6 (Sunday)")
		}
		criteria.WorkDay = &day
	}

	if raw := q.Get("workHour"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil || hour < 0 || hour > 23 {
			return criteria, apperrors.NewValidationError("workHour must be between 0 and 23")
		}
		criteria.WorkHour = &hour
	}

	latRaw, lonRaw := q.Get("lat"), q.Get("lon")
	if (latRaw == "") != (lonRaw == "") {
		return criteria, apperrors.NewValidationError("lat and lon must be supplied together")
	}
	if latRaw != "" {
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			return criteria, apperrors.NewValidationError("invalid lat parameter")
		}
		lon, err := strconv.ParseFloat(lonRaw, 64)
		if err != nil {
			return criteria, apperrors.NewValidationError("invalid lon parameter")
		}
		criteria.UserLocation = &entities.Geo{Latitude: lat, Longitude: lon}
	}

	if raw := q.Get("maxDistanceKm"); raw != "" {
		if criteria.UserLocation == nil {
			return criteria, apperrors.NewValidationError("maxDistanceKm requires lat and lon")
		}
		maxKm, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxKm <= 0 {
			return criteria, apperrors.NewValidationError("invalid maxDistanceKm parameter")
		}
		criteria.MaxDistanceKm = &maxKm
	}

	return criteria, nil
}

// Helper functions shared by all handlers in this package.
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
