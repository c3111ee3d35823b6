package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-log/internal/domain"
)

// mockGeocoder is a test double for handler.Geocoder.
type mockGeocoder struct {
	geocode func(ctx context.Context, city, country string) (domain.Coordinates, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, city, country string) (domain.Coordinates, error) {
	return m.geocode(ctx, city, country)
}

// apiError mirrors the JSON error envelope.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var resp apiError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ---- GET /api/travels ------------------------------------------------------

func TestGetMapTravels_200(t *testing.T) {
	bare := travelFixture()
	bare.ID = 8
	bare.Description = nil
	svc := &mockTravelServicer{
		mapTravels: func(_ context.Context) ([]domain.Travel, error) {
			return []domain.Travel{travelFixture(), bare}, nil
		},
	}

	rec := serve(newHTTPHandler(svc, nil), httptest.NewRequest(http.MethodGet, "/api/travels", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Lisbon", resp[0]["city"])
	assert.InDelta(t, 38.7223, resp[0]["latitude"], 1e-9)
	assert.Contains(t, resp[1], "description")
	assert.Nil(t, resp[1]["description"], "a missing description is encoded as null")
	assert.NotContains(t, resp[0], "created_at")
}

func TestGetMapTravels_200_Empty(t *testing.T) {
	svc := &mockTravelServicer{
		mapTravels: func(_ context.Context) ([]domain.Travel, error) { return []domain.Travel{}, nil },
	}

	rec := serve(newHTTPHandler(svc, nil), httptest.NewRequest(http.MethodGet, "/api/travels", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	// Must be a JSON array, not null.
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetMapTravels_500(t *testing.T) {
	svc := &mockTravelServicer{
		mapTravels: func(_ context.Context) ([]domain.Travel, error) {
			return nil, errors.New("relation \"travels\" does not exist")
		},
	}

	rec := serve(newHTTPHandler(svc, nil), httptest.NewRequest(http.MethodGet, "/api/travels", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "Database error occurred", resp.Error.Message)
}

// ---- GET /api/markers ------------------------------------------------------

func TestGetMarkers_200(t *testing.T) {
	svc := &mockTravelServicer{
		markers: func(_ context.Context) ([]domain.Marker, error) {
			return domain.GroupMarkers([]domain.Travel{travelFixture()}), nil
		},
	}

	rec := serve(newHTTPHandler(svc, nil), httptest.NewRequest(http.MethodGet, "/api/markers", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []domain.Marker
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "38.72230000,-9.13930000", resp[0].Key)
	assert.Equal(t, int64(7), resp[0].Travels[0].ID)
}

func TestGetMarkers_500(t *testing.T) {
	svc := &mockTravelServicer{
		markers: func(_ context.Context) ([]domain.Marker, error) { return nil, errors.New("boom") },
	}

	rec := serve(newHTTPHandler(svc, nil), httptest.NewRequest(http.MethodGet, "/api/markers", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ---- GET /api/geocode ------------------------------------------------------

func TestGetGeocode_200(t *testing.T) {
	var gotCity, gotCountry string
	geo := &mockGeocoder{
		geocode: func(_ context.Context, city, country string) (domain.Coordinates, error) {
			gotCity, gotCountry = city, country
			return domain.Coordinates{Lat: 48.8566, Lon: 2.3522}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/geocode?city=+Paris+&country=France", nil)
	rec := serve(newHTTPHandler(&mockTravelServicer{}, geo), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lat":48.8566,"lon":2.3522}`, rec.Body.String())
	assert.Equal(t, "Paris", gotCity, "query values are trimmed")
	assert.Equal(t, "France", gotCountry)
}

func TestGetGeocode_400_MissingInput(t *testing.T) {
	// geocode left nil: blank input must not reach the provider.
	h := newHTTPHandler(&mockTravelServicer{}, &mockGeocoder{})

	for _, q := range []string{"", "?city=Paris", "?country=France", "?city=%20%20&country=France"} {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/geocode"+q, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", q)
		assert.Equal(t, "City and country are required", decodeError(t, rec).Error.Message)
	}
}

func TestGetGeocode_404(t *testing.T) {
	geo := &mockGeocoder{
		geocode: func(_ context.Context, _, _ string) (domain.Coordinates, error) {
			return domain.Coordinates{}, fmt.Errorf("geocode: %w", domain.ErrNotFound)
		},
	}

	rec := serve(newHTTPHandler(&mockTravelServicer{}, geo),
		httptest.NewRequest(http.MethodGet, "/api/geocode?city=Atlantis&country=Ocean", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Location not found", decodeError(t, rec).Error.Message)
}

func TestGetGeocode_502(t *testing.T) {
	geo := &mockGeocoder{
		geocode: func(_ context.Context, _, _ string) (domain.Coordinates, error) {
			return domain.Coordinates{}, fmt.Errorf("geocode: %w: dial tcp: i/o timeout", domain.ErrUpstream)
		},
	}

	rec := serve(newHTTPHandler(&mockTravelServicer{}, geo),
		httptest.NewRequest(http.MethodGet, "/api/geocode?city=Oslo&country=Norway", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "upstream_error", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "timeout")
}

// ---- /api fallbacks --------------------------------------------------------

func TestAPI_UnknownRouteIsJSON404(t *testing.T) {
	rec := serve(newHTTPHandler(&mockTravelServicer{}, nil), httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)
}

func TestAPI_WriteMethodIs405(t *testing.T) {
	rec := serve(newHTTPHandler(&mockTravelServicer{}, nil), httptest.NewRequest(http.MethodPost, "/api/travels", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", decodeError(t, rec).Error.Code)
}
