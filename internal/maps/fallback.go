// README: Straight-line fallback distance estimator used when routing is unavailable.
package maps

import (
	"motofrete/internal/modules/location"
	"motofrete/internal/types"
)

// DefaultDetourFactor approximates how much longer the road network is than
// the straight line between two points.
const DefaultDetourFactor = 1.3

// FallbackEstimator approximates a driving route when no routing service
// answers: great-circle distance scaled by DetourFactor.
type FallbackEstimator struct {
	DetourFactor float64
}

func NewFallbackEstimator(detourFactor float64) FallbackEstimator {
	if detourFactor <= 0 {
		detourFactor = DefaultDetourFactor
	}
	return FallbackEstimator{DetourFactor: detourFactor}
}

// EstimateDistance returns the heuristic road distance in km.
func (f FallbackEstimator) EstimateDistance(origin, destination types.Point) float64 {
	return location.HaversineKm(origin, destination) * f.DetourFactor
}

// Estimate returns a synthetic two-point route from origin to destination.
func (f FallbackEstimator) Estimate(origin, destination types.Point) Route {
	return Route{
		Path:       []types.Point{origin, destination},
		DistanceKm: f.EstimateDistance(origin, destination),
		IsFallback: true,
		Provider:   "fallback",
	}
}
