// README: Google Maps client construction and Directions-based router.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"motofrete/internal/types"
)

// NewGoogleClient creates a Google Maps client with the given API key.
func NewGoogleClient(apiKey string, opts ...maps.ClientOption) (*maps.Client, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// GoogleRouter resolves routes with the Google Directions API.
type GoogleRouter struct {
	client *maps.Client
	region string
}

func NewGoogleRouter(client *maps.Client, region string) *GoogleRouter {
	return &GoogleRouter{client: client, region: region}
}

// Route requests a driving route and returns the decoded overview polyline
// with the summed leg distance.
func (s *GoogleRouter) Route(ctx context.Context, origin, destination types.Point) (Route, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin.LatLng(),
		Destination: destination.LatLng(),
		Mode:        maps.TravelModeDriving,
		Language:    "pt-BR",
		Region:      s.region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return Route{}, fmt.Errorf("%w: maps api error: %v", ErrRoutingUnavailable, err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Route{}, fmt.Errorf("%w: %w", ErrRoutingUnavailable, ErrNoRoute)
	}

	var meters int
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}

	decoded, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return Route{}, fmt.Errorf("%w: decode polyline: %v", ErrRoutingUnavailable, err)
	}
	path := make([]types.Point, len(decoded))
	for i, ll := range decoded {
		path[i] = types.Point{Lat: ll.Lat, Lng: ll.Lng}
	}

	return Route{
		Path:       path,
		DistanceKm: float64(meters) / 1000,
		Provider:   "google",
	}, nil
}
