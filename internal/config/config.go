// README: Config loader with env defaults for HTTP, store location, pricing, maps providers and backing services.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MOTOFRETE"

type Config struct {
	AppEnv string
	HTTP   struct {
		Addr string
	}
	Store struct {
		Lat      float64
		Lng      float64
		City     string
		Phone    string
		Currency string
	}
	Pricing struct {
		MinimumFee float64
		IncludedKm float64
		PerKmRate  float64
		// RefreshInterval controls how often the stored rate override is
		// reloaded. Zero disables reloading after startup.
		RefreshInterval time.Duration
	}
	Routing struct {
		Provider     string
		OSRMBaseURL  string
		Timeout      time.Duration
		DetourFactor float64
	}
	Geocoding struct {
		Provider  string
		BaseURL   string
		UserAgent string
		Region    string
		CacheTTL  time.Duration
	}
	Google struct {
		APIKey string
	}
	Session struct {
		Store string
		TTL   time.Duration
	}
	Redis struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Kafka struct {
		Brokers string
		Topic   string
	}
}

// Load reads MOTOFRETE_* environment variables over the built-in defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	cfg.AppEnv = v.GetString("app.env")
	cfg.HTTP.Addr = v.GetString("http.addr")

	cfg.Store.Lat = v.GetFloat64("store.lat")
	cfg.Store.Lng = v.GetFloat64("store.lng")
	cfg.Store.City = v.GetString("store.city")
	cfg.Store.Phone = v.GetString("store.phone")
	cfg.Store.Currency = v.GetString("store.currency")

	cfg.Pricing.MinimumFee = v.GetFloat64("pricing.minimum_fee")
	cfg.Pricing.IncludedKm = v.GetFloat64("pricing.included_km")
	cfg.Pricing.PerKmRate = v.GetFloat64("pricing.per_km_rate")
	cfg.Pricing.RefreshInterval = v.GetDuration("pricing.refresh_interval")

	cfg.Routing.Provider = strings.ToLower(v.GetString("routing.provider"))
	cfg.Routing.OSRMBaseURL = v.GetString("routing.osrm_base_url")
	cfg.Routing.Timeout = v.GetDuration("routing.timeout")
	cfg.Routing.DetourFactor = v.GetFloat64("routing.detour_factor")

	cfg.Geocoding.Provider = strings.ToLower(v.GetString("geocoding.provider"))
	cfg.Geocoding.BaseURL = v.GetString("geocoding.base_url")
	cfg.Geocoding.UserAgent = v.GetString("geocoding.user_agent")
	cfg.Geocoding.Region = v.GetString("geocoding.region")
	cfg.Geocoding.CacheTTL = v.GetDuration("geocoding.cache_ttl")

	cfg.Google.APIKey = v.GetString("google.api_key")

	cfg.Session.Store = strings.ToLower(v.GetString("session.store"))
	cfg.Session.TTL = v.GetDuration("session.ttl")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Kafka.Brokers = v.GetString("kafka.brokers")
	cfg.Kafka.Topic = v.GetString("kafka.topic")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("http.addr", ":8080")

	v.SetDefault("store.lat", -15.752369)
	v.SetDefault("store.lng", -48.324535)
	v.SetDefault("store.city", "Cocalzinho de Goiás")
	v.SetDefault("store.phone", "5561998800459")
	v.SetDefault("store.currency", "BRL")

	v.SetDefault("pricing.minimum_fee", 5.00)
	v.SetDefault("pricing.included_km", 5.0)
	v.SetDefault("pricing.per_km_rate", 0.75)
	v.SetDefault("pricing.refresh_interval", 5*time.Minute)

	v.SetDefault("routing.provider", "osrm")
	v.SetDefault("routing.osrm_base_url", "http://router.project-osrm.org")
	v.SetDefault("routing.timeout", 5*time.Second)
	v.SetDefault("routing.detour_factor", 1.3)

	v.SetDefault("geocoding.provider", "nominatim")
	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.user_agent", "motofrete_delivery")
	v.SetDefault("geocoding.region", "br")
	v.SetDefault("geocoding.cache_ttl", 7*24*time.Hour)

	v.SetDefault("google.api_key", "")

	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("db.dsn", "")
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "delivery.quotes")
}

func (c Config) Validate() error {
	var errs []error
	if c.Store.Lat < -90 || c.Store.Lat > 90 || c.Store.Lng < -180 || c.Store.Lng > 180 {
		errs = append(errs, fmt.Errorf("store coordinate out of range: %f,%f", c.Store.Lat, c.Store.Lng))
	}
	if c.Store.Phone == "" {
		errs = append(errs, errors.New("store phone is required"))
	}
	if c.Routing.DetourFactor <= 0 {
		errs = append(errs, errors.New("routing detour factor must be positive"))
	}
	if c.Routing.Timeout <= 0 {
		errs = append(errs, errors.New("routing timeout must be positive"))
	}
	switch c.Routing.Provider {
	case "osrm":
	case "google":
		if c.Google.APIKey == "" {
			errs = append(errs, errors.New("google routing requires MOTOFRETE_GOOGLE_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown routing provider %q", c.Routing.Provider))
	}
	switch c.Geocoding.Provider {
	case "nominatim":
	case "google":
		if c.Google.APIKey == "" {
			errs = append(errs, errors.New("google geocoding requires MOTOFRETE_GOOGLE_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown geocoding provider %q", c.Geocoding.Provider))
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("unknown session store %q", c.Session.Store))
	}
	return errors.Join(errs...)
}
