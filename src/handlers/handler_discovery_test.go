package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Go_Discovery/src/discovery"
	"Go_Discovery/src/types"
)

type fakeStore struct {
	restaurants []types.Restaurant
	err         error
}

func (f fakeStore) Restaurants(ctx context.Context) ([]types.Restaurant, error) {
	return f.restaurants, f.err
}

func newTestRouter(store types.CatalogStore) http.Handler {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	cfg := discovery.DefaultConfig()
	cfg.Now = func() time.Time { return now }
	svc := discovery.NewService(store, cfg, zap.NewNop())
	return NewRouter(svc, zap.NewNop())
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDiscoveryEndpoint(t *testing.T) {
	store := fakeStore{restaurants: []types.Restaurant{
		{
			Name:       "Fake Onion",
			Blurhash:   "UEJk:MRQHN%M_4RjM{ayIVRjs+ayI9Rjxufj",
			LaunchDate: types.NewDate(2026, time.October, 10),
			Location:   types.GeoPoint{Lat: 60.1786, Lon: 24.9365},
			Online:     true,
			Popularity: 0.9,
		},
		{
			Name:       "Far Away Grill",
			Blurhash:   "UFL3:ZxuD*of~qj[RjofIUayRjj[?bofIUay",
			LaunchDate: types.NewDate(2026, time.October, 10),
			Location:   types.GeoPoint{Lat: 60.2, Lon: 24.2},
			Online:     true,
			Popularity: 1.0,
		},
	}}

	rec := get(t, newTestRouter(store), "/discovery?lat=60.174&lon=24.941244")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	restaurant := `{
		"blurhash": "UEJk:MRQHN%M_4RjM{ayIVRjs+ayI9Rjxufj",
		"launch_date": "2026-10-10",
		"location": [60.1786, 24.9365],
		"name": "Fake Onion",
		"online": true,
		"popularity": 0.9
	}`
	want := fmt.Sprintf(`{"sections": [
		{"title": "Popular Restaurants", "restaurants": [%[1]s]},
		{"title": "New Restaurants", "restaurants": [%[1]s]},
		{"title": "Nearby Restaurants", "restaurants": [%[1]s]}
	]}`, restaurant)
	assert.JSONEq(t, want, rec.Body.String())
}

func TestDiscoveryEndpointNoSections(t *testing.T) {
	rec := get(t, newTestRouter(fakeStore{restaurants: []types.Restaurant{}}), "/discovery?lat=60.174&lon=24.941244")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sections": []}`, rec.Body.String())
}

func TestDiscoveryEndpointBadRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"no parameters", "", discovery.LatitudeRequiredMessage},
		{"empty latitude", "?lat=&lon=24.9", discovery.LatitudeRequiredMessage},
		{"latitude not a number", "?lat=abc.&lon=24.9", discovery.LatitudeInvalidMessage},
		{"latitude out of range", "?lat=100&lon=24.9", discovery.LatitudeInvalidMessage},
		{"missing longitude", "?lat=60.17", discovery.LongitudeRequiredMessage},
		{"longitude not a number", "?lat=60.17&lon=abc.", discovery.LongitudeInvalidMessage},
		{"longitude out of range", "?lat=60.17&lon=-300", discovery.LongitudeInvalidMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestRouter(fakeStore{}), "/discovery"+tt.query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}

func TestDiscoveryEndpointCatalogUnavailable(t *testing.T) {
	store := fakeStore{err: fmt.Errorf("%w: read failed", types.ErrCatalogUnavailable)}

	rec := get(t, newTestRouter(store), "/discovery?lat=60.174&lon=24.941244")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error fetching restaurants")
	assert.NotContains(t, rec.Body.String(), "read failed")
}

func TestDiscoveryEndpointMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(fakeStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/discovery?lat=1&lon=1", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	rec := get(t, newTestRouter(fakeStore{}), "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(fakeStore{restaurants: []types.Restaurant{}})
	get(t, router, "/discovery?lat=60.174&lon=24.941244")

	rec := get(t, router, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "discovery_http_requests_total")
	assert.Contains(t, rec.Body.String(), "discovery_catalog_load_duration_seconds")
}
