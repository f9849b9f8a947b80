// README: Service wiring; builds stores, adapters and the delivery service from config.
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gmaps "googlemaps.github.io/maps"

	"motofrete/internal/config"
	"motofrete/internal/events"
	"motofrete/internal/infra"
	"motofrete/internal/maps"
	"motofrete/internal/metrics"
	"motofrete/internal/modules/delivery"
	"motofrete/internal/modules/location"
	"motofrete/internal/modules/pricing"
	"motofrete/internal/types"
)

type app struct {
	delivery      *delivery.Service
	registry      *prometheus.Registry
	serverMetrics *metrics.ServerMetrics
	closers       []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// closeOnError releases everything opened so far when construction fails.
func (a *app) closeOnError(err *error) {
	if *err != nil {
		a.Close()
	}
}

func newApp(ctx context.Context, cfg config.Config, log *zap.Logger) (_ *app, err error) {
	a := &app{registry: prometheus.NewRegistry()}
	defer a.closeOnError(&err)
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.serverMetrics = metrics.NewServerMetrics(a.registry)
	quoteMetrics := metrics.NewQuoteMetrics(a.registry)

	var rdb *redis.Client
	if cfg.Session.Store == "redis" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, err
		}
		rdb = client
		a.closers = append(a.closers, func() { _ = client.Close() })
	}

	var db *pgxpool.Pool
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		db = pool
		a.closers = append(a.closers, pool.Close)
	}

	pricer, err := newPricer(ctx, cfg, db, log)
	if err != nil {
		return nil, err
	}

	var gclient *gmaps.Client
	if cfg.Google.APIKey != "" {
		gclient, err = maps.NewGoogleClient(cfg.Google.APIKey)
		if err != nil {
			return nil, err
		}
	}
	httpc := &http.Client{Timeout: cfg.Routing.Timeout}

	var geocoder location.Geocoder
	switch cfg.Geocoding.Provider {
	case "google":
		geocoder = maps.NewGoogleGeocoder(gclient, cfg.Geocoding.Region)
	default:
		geocoder = maps.NewNominatimGeocoder(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, httpc)
	}
	var geocodeCache *location.Store
	if rdb != nil {
		geocodeCache = location.NewStore(rdb, cfg.Geocoding.CacheTTL)
	}
	locator := location.NewService(geocoder, geocodeCache, cfg.Store.City, log.Named("location"))

	var primary maps.Router
	switch cfg.Routing.Provider {
	case "google":
		primary = maps.NewGoogleRouter(gclient, cfg.Geocoding.Region)
	default:
		primary = maps.NewOSRMRouter(cfg.Routing.OSRMBaseURL, httpc)
	}
	router := maps.NewResilientRouter(
		primary,
		maps.NewFallbackEstimator(cfg.Routing.DetourFactor),
		log.Named("routing"),
		maps.WithTimeout(cfg.Routing.Timeout),
		maps.WithFallbackHook(quoteMetrics.ObserveFallback),
	)

	var sessions delivery.SessionStore = delivery.NewMemoryStore()
	if rdb != nil {
		sessions = delivery.NewRedisStore(rdb, cfg.Session.TTL)
	}

	deps := delivery.Deps{
		Store:    sessions,
		Locator:  locator,
		Router:   router,
		Pricer:   pricer,
		Observer: func(r delivery.Result) { quoteMetrics.ObserveQuote(string(r.Source), r.Fee) },
		Logger:   log.Named("delivery"),
	}
	if db != nil {
		history := delivery.NewHistoryStore(db)
		if err := history.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		deps.History = history
	}
	if brokers := infra.ParseBrokers(cfg.Kafka.Brokers); len(brokers) > 0 {
		pub := events.NewKafkaPublisher(infra.NewKafkaWriter(brokers, cfg.Kafka.Topic), log.Named("events"))
		deps.Publisher = pub
		a.closers = append(a.closers, func() { _ = pub.Close() })
	} else {
		deps.Publisher = events.NopPublisher{}
	}

	origin := types.Point{Lat: cfg.Store.Lat, Lng: cfg.Store.Lng}
	a.delivery = delivery.NewService(deps, origin)

	if db != nil && cfg.Pricing.RefreshInterval > 0 {
		go pricer.RunRefresher(ctx, cfg.Pricing.RefreshInterval)
	}
	return a, nil
}

// newPricer uses the configured rate, replaced by the stored override when
// a database is available.
func newPricer(ctx context.Context, cfg config.Config, db *pgxpool.Pool, log *zap.Logger) (*pricing.Service, error) {
	rate := pricing.Rate{
		MinimumFee: cfg.Pricing.MinimumFee,
		IncludedKm: cfg.Pricing.IncludedKm,
		PerKmRate:  cfg.Pricing.PerKmRate,
		Currency:   cfg.Store.Currency,
	}
	if err := rate.Validate(); err != nil {
		return nil, fmt.Errorf("pricing config: %w", err)
	}
	if db == nil {
		return pricing.NewService(rate, nil, log.Named("pricing")), nil
	}

	store := pricing.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	svc := pricing.NewService(rate, store, log.Named("pricing"))
	refreshCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := svc.Refresh(refreshCtx); err != nil {
		log.Warn("rate override unavailable, using configured rate", zap.Error(err))
	}
	return svc, nil
}
