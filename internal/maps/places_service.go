// README: Google Geocoding/Places address resolver.
package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"motofrete/internal/types"
)

// GoogleGeocoder resolves addresses with the Geocoding API, falling back to
// a Places text search when the geocoder has no match.
type GoogleGeocoder struct {
	client  *maps.Client
	region  string
	country string
}

func NewGoogleGeocoder(client *maps.Client, region string) *GoogleGeocoder {
	return &GoogleGeocoder{client: client, region: region, country: strings.ToUpper(region)}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (types.Point, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.Point{}, ErrNoMatch
	}

	req := &maps.GeocodingRequest{
		Address:  query,
		Region:   g.region,
		Language: "pt-BR",
	}
	if g.country != "" {
		req.Components = map[maps.Component]string{maps.ComponentCountry: g.country}
	}
	results, err := g.client.Geocode(ctx, req)
	if err != nil && !isZeroResults(err) {
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) > 0 {
		loc := results[0].Geometry.Location
		return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
	}

	return g.searchPlace(ctx, query)
}

// searchPlace finds landmark-style addresses ("Padaria do Zé, Centro") that
// the geocoder does not index.
func (g *GoogleGeocoder) searchPlace(ctx context.Context, query string) (types.Point, error) {
	resp, err := g.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: "pt-BR",
		Region:   g.region,
	})
	if err != nil && !isZeroResults(err) {
		return types.Point{}, fmt.Errorf("places api error: %w", err)
	}
	if err != nil || len(resp.Results) == 0 {
		return types.Point{}, ErrNoMatch
	}
	loc := resp.Results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

func isZeroResults(err error) bool {
	return strings.Contains(err.Error(), "ZERO_RESULTS")
}
