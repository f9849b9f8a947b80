// README: Delivery service runs the submit/reset cycle of a request session.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"motofrete/internal/maps"
	"motofrete/internal/modules/location"
	"motofrete/internal/modules/pricing"
	"motofrete/internal/types"
)

type Locator interface {
	Resolve(ctx context.Context, address string, device *types.Point) (location.Resolution, error)
}

type Pricer interface {
	Quote(distanceKm float64) pricing.Quote
}

// History records computed quotes. Failures never affect the session.
type History interface {
	Append(ctx context.Context, sessionID types.ID, r Result) error
}

type Publisher interface {
	PublishQuoted(ctx context.Context, evt QuotedEvent) error
}

// Observer is notified after each stored quote; used for metrics.
type Observer func(r Result)

type Deps struct {
	Store     SessionStore
	Locator   Locator
	Router    maps.Router
	Pricer    Pricer
	History   History
	Publisher Publisher
	Observer  Observer
	Logger    *zap.Logger
}

type Service struct {
	store     SessionStore
	locator   Locator
	router    maps.Router
	pricer    Pricer
	history   History
	publisher Publisher
	observe   Observer
	origin    types.Point
	log       *zap.Logger
	now       func() time.Time
}

// NewService builds the session service. origin is the store's coordinate.
func NewService(deps Deps, origin types.Point) *Service {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:     deps.Store,
		locator:   deps.Locator,
		router:    deps.Router,
		pricer:    deps.Pricer,
		history:   deps.History,
		publisher: deps.Publisher,
		observe:   deps.Observer,
		origin:    origin,
		log:       log,
		now:       time.Now,
	}
}

type SubmitCommand struct {
	Address   string
	Reference string
	Device    *types.Point
}

// Submit calculates a quote and stores it as the session's only result.
// Validation and location failures leave the session untouched.
func (s *Service) Submit(ctx context.Context, sessionID types.ID, cmd SubmitCommand) (*Result, error) {
	if sessionID == "" {
		return nil, ErrBadSession
	}
	address := strings.TrimSpace(cmd.Address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	loc, err := s.locator.Resolve(ctx, address, cmd.Device)
	if err != nil {
		if errors.Is(err, location.ErrUnresolved) {
			return nil, fmt.Errorf("%w: %v", ErrLocationUnresolved, err)
		}
		return nil, err
	}

	route, err := s.router.Route(ctx, s.origin, loc.Point)
	if err != nil {
		return nil, fmt.Errorf("route delivery: %w", err)
	}

	quote := s.pricer.Quote(route.DistanceKm)
	r := &Result{
		ID:          types.ID(uuid.NewString()),
		Origin:      s.origin,
		Destination: loc.Point,
		Route:       route,
		Fee:         quote.Fee,
		Currency:    quote.Currency,
		Address:     address,
		Reference:   strings.TrimSpace(cmd.Reference),
		Source:      loc.Source,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Put(ctx, sessionID, r); err != nil {
		return nil, fmt.Errorf("store session result: %w", err)
	}

	s.log.Info("delivery quote calculated",
		zap.String("session_id", string(sessionID)),
		zap.String("quote_id", string(r.ID)),
		zap.String("location_source", string(r.Source)),
		zap.String("route_provider", r.Route.Provider),
		zap.Float64("distance_km", r.DistanceKm()),
		zap.Float64("fee", r.Fee),
	)
	s.record(ctx, sessionID, *r)
	return r, nil
}

// Current returns the session's result or ErrNoResult.
func (s *Service) Current(ctx context.Context, sessionID types.ID) (*Result, error) {
	if sessionID == "" {
		return nil, ErrBadSession
	}
	return s.store.Get(ctx, sessionID)
}

func (s *Service) State(ctx context.Context, sessionID types.ID) (State, error) {
	_, err := s.Current(ctx, sessionID)
	switch {
	case err == nil:
		return StateHasResult, nil
	case errors.Is(err, ErrNoResult):
		return StateEmpty, nil
	default:
		return "", err
	}
}

// Reset discards the session's result. Resetting an empty session is a no-op.
func (s *Service) Reset(ctx context.Context, sessionID types.ID) error {
	if sessionID == "" {
		return ErrBadSession
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	s.log.Debug("delivery session reset", zap.String("session_id", string(sessionID)))
	return nil
}

func (s *Service) record(ctx context.Context, sessionID types.ID, r Result) {
	if s.observe != nil {
		s.observe(r)
	}
	if s.history != nil {
		if err := s.history.Append(ctx, sessionID, r); err != nil {
			s.log.Error("failed to record quote history",
				zap.String("quote_id", string(r.ID)),
				zap.Error(err),
			)
		}
	}
	if s.publisher != nil {
		evt := QuotedEvent{
			QuoteID:     r.ID,
			SessionID:   sessionID,
			Destination: r.Destination,
			DistanceKm:  r.DistanceKm(),
			Fee:         r.Fee,
			Currency:    r.Currency,
			IsFallback:  r.Route.IsFallback,
			Source:      string(r.Source),
			OccurredAt:  r.CreatedAt,
		}
		if err := s.publisher.PublishQuoted(ctx, evt); err != nil {
			s.log.Error("failed to publish quote event",
				zap.String("quote_id", string(r.ID)),
				zap.Error(err),
			)
		}
	}
}
