// README: Location service resolves a delivery address to a coordinate.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"motofrete/internal/types"
)

var ErrUnresolved = errors.New("location could not be resolved")

// Geocoder resolves a free-text address to the first matching coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (types.Point, error)
}

type Service struct {
	geocoder Geocoder
	cache    *Store
	city     string
	log      *zap.Logger
}

// NewService builds a resolver. cache may be nil.
func NewService(geocoder Geocoder, cache *Store, city string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{geocoder: geocoder, cache: cache, city: city, log: log}
}

// Resolve prefers the device location when one is present, otherwise it
// geocodes "address, city". A zero coordinate counts as missing.
func (s *Service) Resolve(ctx context.Context, address string, device *types.Point) (Resolution, error) {
	if usable(device) {
		return Resolution{Point: *device, Source: SourceDevice}, nil
	}

	query := s.query(address)
	if query == "" {
		return Resolution{}, ErrUnresolved
	}

	if s.cache != nil {
		if p, ok, err := s.cache.Get(ctx, query); err != nil {
			s.log.Warn("geocode cache read failed", zap.String("query", query), zap.Error(err))
		} else if ok {
			return Resolution{Point: p, Source: SourceGeocoded}, nil
		}
	}

	if s.geocoder == nil {
		return Resolution{}, ErrUnresolved
	}
	p, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		s.log.Info("geocoding failed", zap.String("query", query), zap.Error(err))
		return Resolution{}, fmt.Errorf("%w: %v", ErrUnresolved, err)
	}
	if !usable(&p) {
		return Resolution{}, ErrUnresolved
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, query, p); err != nil {
			s.log.Warn("geocode cache write failed", zap.String("query", query), zap.Error(err))
		}
	}
	return Resolution{Point: p, Source: SourceGeocoded}, nil
}

func (s *Service) query(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	if s.city == "" {
		return address
	}
	return fmt.Sprintf("%s, %s", address, s.city)
}

func usable(p *types.Point) bool {
	return p != nil && p.Lat != 0 && p.Lng != 0 && p.Valid()
}
