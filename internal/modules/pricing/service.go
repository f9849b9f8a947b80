// README: Pricing service computes delivery fees from route distance.
package pricing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"motofrete/internal/types"
)

// RateSource supplies an override tariff. ok=false means no override is stored.
type RateSource interface {
	GetRate(ctx context.Context) (rate Rate, ok bool, err error)
}

type Service struct {
	mu     sync.RWMutex
	rate   Rate
	source RateSource
	log    *zap.Logger
}

func NewService(rate Rate, source RateSource, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{rate: rate, source: source, log: log}
}

// Rate returns the tariff currently in effect.
func (s *Service) Rate() Rate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rate
}

// Refresh reloads the tariff from the rate source. A missing or invalid
// override keeps the current tariff.
func (s *Service) Refresh(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	rate, ok, err := s.source.GetRate(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := rate.Validate(); err != nil {
		s.log.Warn("ignoring stored delivery rate", zap.Error(err))
		return nil
	}
	s.mu.Lock()
	s.rate = rate
	s.mu.Unlock()
	s.log.Info("delivery rate loaded",
		zap.Float64("minimum_fee", rate.MinimumFee),
		zap.Float64("included_km", rate.IncludedKm),
		zap.Float64("per_km_rate", rate.PerKmRate),
	)
	return nil
}

// RunRefresher reloads the tariff every interval until ctx is done.
func (s *Service) RunRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.Warn("delivery rate refresh failed", zap.Error(err))
			}
		}
	}
}

// CalculateFee maps a non-negative distance to a fee. Distances up to the
// included km cost the minimum fee; beyond that each km adds the per-km rate.
func (s *Service) CalculateFee(distanceKm float64) float64 {
	return calculateFee(s.Rate(), distanceKm)
}

// Quote is a fee priced under one tariff snapshot, so the amount and its
// currency always come from the same rate.
type Quote struct {
	Fee      float64
	Currency string
}

// Money rounds the fee to cents.
func (q Quote) Money() types.Money {
	return types.NewMoney(q.Fee, q.Currency)
}

// Quote prices distanceKm under the tariff currently in effect.
func (s *Service) Quote(distanceKm float64) Quote {
	r := s.Rate()
	return Quote{Fee: calculateFee(r, distanceKm), Currency: r.Currency}
}

func calculateFee(r Rate, distanceKm float64) float64 {
	if distanceKm <= r.IncludedKm {
		return r.MinimumFee
	}
	return r.MinimumFee + (distanceKm-r.IncludedKm)*r.PerKmRate
}
