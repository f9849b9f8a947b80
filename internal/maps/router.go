// README: Router contract, route value type and routing/geocoding sentinel errors.
package maps

import (
	"context"
	"errors"

	"motofrete/internal/types"
)

var (
	// ErrRoutingUnavailable wraps every routing failure: transport errors,
	// timeouts, non-200 responses and unparseable bodies.
	ErrRoutingUnavailable = errors.New("routing service unavailable")
	ErrNoRoute            = errors.New("no route found")
	ErrNoMatch            = errors.New("no geocoding match")
)

// Route is a driving route as an ordered polyline plus its length.
type Route struct {
	Path       []types.Point `json:"path"`
	DistanceKm float64       `json:"distance_km"`
	// IsFallback is true when the route was synthesized by the straight-line
	// estimator instead of returned by a routing service.
	IsFallback bool   `json:"is_fallback"`
	Provider   string `json:"provider"`
}

// Router resolves a driving route between two coordinates.
type Router interface {
	Route(ctx context.Context, origin, destination types.Point) (Route, error)
}
