// README: Resilient router wrapping a primary router with a timeout and fallback.
package maps

import (
	"context"
	"time"

	"go.uber.org/zap"

	"motofrete/internal/types"
)

const DefaultRoutingTimeout = 5 * time.Second

// ResilientRouter asks the primary router with a deadline and substitutes the
// fallback estimate on any failure. It never returns an error.
type ResilientRouter struct {
	primary    Router
	fallback   FallbackEstimator
	timeout    time.Duration
	log        *zap.Logger
	onFallback func(error)
}

type ResilientOption func(*ResilientRouter)

func WithTimeout(d time.Duration) ResilientOption {
	return func(r *ResilientRouter) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithFallbackHook registers a callback run every time the fallback is used.
func WithFallbackHook(fn func(error)) ResilientOption {
	return func(r *ResilientRouter) { r.onFallback = fn }
}

func NewResilientRouter(primary Router, fallback FallbackEstimator, log *zap.Logger, opts ...ResilientOption) *ResilientRouter {
	if log == nil {
		log = zap.NewNop()
	}
	r := &ResilientRouter{
		primary:  primary,
		fallback: fallback,
		timeout:  DefaultRoutingTimeout,
		log:      log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ResilientRouter) Route(ctx context.Context, origin, destination types.Point) (Route, error) {
	if r.primary != nil {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		route, err := r.primary.Route(callCtx, origin, destination)
		cancel()
		if err == nil && len(route.Path) > 0 {
			return route, nil
		}
		if err == nil {
			err = ErrNoRoute
		}
		r.useFallback(err)
	} else {
		r.useFallback(ErrRoutingUnavailable)
	}
	return r.fallback.Estimate(origin, destination), nil
}

func (r *ResilientRouter) useFallback(err error) {
	r.log.Warn("routing unavailable, using straight-line estimate",
		zap.Float64("detour_factor", r.fallback.DetourFactor),
		zap.Error(err),
	)
	if r.onFallback != nil {
		r.onFallback(err)
	}
}
