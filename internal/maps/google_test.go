package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"motofrete/internal/types"
)

func newGoogleTestClient(t *testing.T, handler http.HandlerFunc) *maps.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewGoogleClient("test-key", maps.WithBaseURL(srv.URL), maps.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return client
}

func TestGoogleRouter_DecodesPolylineAndSumsLegs(t *testing.T) {
	encoded := maps.Encode([]maps.LatLng{
		{Lat: store.Lat, Lng: store.Lng},
		{Lat: dest.Lat, Lng: dest.Lng},
	})
	client := newGoogleTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/directions/json")
		assert.Equal(t, "driving", r.URL.Query().Get("mode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [{
				"overview_polyline": {"points": "` + strings.ReplaceAll(encoded, `\`, `\\`) + `"},
				"legs": [
					{"distance": {"text": "2,0 km", "value": 2000}, "duration": {"text": "4 min", "value": 240}},
					{"distance": {"text": "1,0 km", "value": 1000}, "duration": {"text": "2 min", "value": 120}}
				]
			}]
		}`))
	})

	route, err := NewGoogleRouter(client, "br").Route(context.Background(), store, dest)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, route.DistanceKm, 1e-9)
	assert.Equal(t, "google", route.Provider)
	require.Len(t, route.Path, 2)
	assert.InDelta(t, store.Lat, route.Path[0].Lat, 1e-5)
	assert.InDelta(t, dest.Lng, route.Path[1].Lng, 1e-5)
}

func TestGoogleRouter_NoRoutes(t *testing.T) {
	client := newGoogleTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	})

	_, err := NewGoogleRouter(client, "br").Route(context.Background(), store, dest)
	assert.ErrorIs(t, err, ErrRoutingUnavailable)
}

func TestGoogleGeocoder_GeocodeThenPlacesFallback(t *testing.T) {
	var paths []string
	client := newGoogleTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch {
		case strings.Contains(r.URL.Path, "/geocode/json") && strings.Contains(r.URL.Query().Get("address"), "Padaria"):
			_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
		case strings.Contains(r.URL.Path, "/geocode/json"):
			_, _ = w.Write([]byte(`{"status": "OK", "results": [{"geometry": {"location": {"lat": -15.76, "lng": -48.31}}}]}`))
		case strings.Contains(r.URL.Path, "/textsearch/json"):
			_, _ = w.Write([]byte(`{"status": "OK", "results": [{"name": "Padaria", "geometry": {"location": {"lat": -15.75, "lng": -48.32}}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	g := NewGoogleGeocoder(client, "br")

	p, err := g.Geocode(context.Background(), "Rua das Flores, 10, Cocalzinho de Goiás")
	require.NoError(t, err)
	assert.Equal(t, types.Point{Lat: -15.76, Lng: -48.31}, p)

	p, err = g.Geocode(context.Background(), "Padaria do Zé, Cocalzinho de Goiás")
	require.NoError(t, err)
	assert.Equal(t, types.Point{Lat: -15.75, Lng: -48.32}, p)
	assert.Len(t, paths, 3)
}

func TestGoogleGeocoder_NoMatch(t *testing.T) {
	client := newGoogleTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, err := NewGoogleGeocoder(client, "br").Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrNoMatch)
}
