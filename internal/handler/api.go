package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/travel-log/internal/domain"
)

// GetMapTravels handles GET /api/travels.
// Returns every travel with coordinates, newest year first, then by city.
func (s *Server) GetMapTravels(w http.ResponseWriter, r *http.Request) {
	travels, err := s.travels.MapTravels(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "list map travels", "error", err)
		writeJSON(w, http.StatusInternalServerError, internalBody())
		return
	}
	writeJSON(w, http.StatusOK, travels)
}

// GetMarkers handles GET /api/markers.
// Returns the map travels grouped into one marker per location.
func (s *Server) GetMarkers(w http.ResponseWriter, r *http.Request) {
	markers, err := s.travels.Markers(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "list map markers", "error", err)
		writeJSON(w, http.StatusInternalServerError, internalBody())
		return
	}
	writeJSON(w, http.StatusOK, markers)
}

// GetGeocode handles GET /api/geocode?city=&country=.
// 400 when either is blank, 404 when the provider has no match, 502 when the
// provider fails.
func (s *Server) GetGeocode(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(queryString(r, "city"))
	country := strings.TrimSpace(queryString(r, "country"))
	if city == "" || country == "" {
		writeJSON(w, http.StatusBadRequest, requestBody("City and country are required"))
		return
	}

	coords, err := s.geocoder.Geocode(r.Context(), city, country)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, coords)
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody("Location not found"))
	default:
		s.log.ErrorContext(r.Context(), "geocode lookup failed", "city", city, "country", country, "error", err)
		writeJSON(w, http.StatusBadGateway, upstreamBody())
	}
}
