// README: OSRM driving-route client.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"motofrete/internal/types"
)

const DefaultOSRMBaseURL = "http://router.project-osrm.org"

// OSRMRouter queries an OSRM "route" service for driving directions.
type OSRMRouter struct {
	baseURL string
	http    *http.Client
}

func NewOSRMRouter(baseURL string, httpClient *http.Client) *OSRMRouter {
	if baseURL == "" {
		baseURL = DefaultOSRMBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OSRMRouter{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

func (r *OSRMRouter) Route(ctx context.Context, origin, destination types.Point) (Route, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%s;%s?overview=full&geometries=geojson",
		r.baseURL, origin.LngLat(), destination.LngLat())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrRoutingUnavailable, err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrRoutingUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Route{}, fmt.Errorf("%w: osrm %d: %s", ErrRoutingUnavailable, resp.StatusCode, string(b))
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Route{}, fmt.Errorf("%w: decode osrm body: %v", ErrRoutingUnavailable, err)
	}
	if len(body.Routes) == 0 {
		return Route{}, fmt.Errorf("%w: %w", ErrRoutingUnavailable, ErrNoRoute)
	}

	route := body.Routes[0]
	path := make([]types.Point, 0, len(route.Geometry.Coordinates))
	for _, c := range route.Geometry.Coordinates {
		// GeoJSON order: [lon, lat]
		if len(c) < 2 {
			return Route{}, fmt.Errorf("%w: malformed coordinate %v", ErrRoutingUnavailable, c)
		}
		path = append(path, types.Point{Lat: c[1], Lng: c[0]})
	}

	return Route{
		Path:       path,
		DistanceKm: route.Distance / 1000,
		Provider:   "osrm",
	}, nil
}
