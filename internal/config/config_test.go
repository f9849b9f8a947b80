package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, -15.752369, cfg.Store.Lat)
	assert.Equal(t, -48.324535, cfg.Store.Lng)
	assert.Equal(t, "Cocalzinho de Goiás", cfg.Store.City)
	assert.Equal(t, "5561998800459", cfg.Store.Phone)
	assert.Equal(t, 5.0, cfg.Pricing.MinimumFee)
	assert.Equal(t, 5.0, cfg.Pricing.IncludedKm)
	assert.Equal(t, 0.75, cfg.Pricing.PerKmRate)
	assert.Equal(t, 1.3, cfg.Routing.DetourFactor)
	assert.Equal(t, 5*time.Second, cfg.Routing.Timeout)
	assert.Equal(t, "osrm", cfg.Routing.Provider)
	assert.Equal(t, "nominatim", cfg.Geocoding.Provider)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Empty(t, cfg.DB.DSN)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MOTOFRETE_ROUTING_DETOUR_FACTOR", "1.5")
	t.Setenv("MOTOFRETE_ROUTING_TIMEOUT", "2s")
	t.Setenv("MOTOFRETE_STORE_CITY", "Anápolis")
	t.Setenv("MOTOFRETE_SESSION_STORE", "REDIS")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Routing.DetourFactor)
	assert.Equal(t, 2*time.Second, cfg.Routing.Timeout)
	assert.Equal(t, "Anápolis", cfg.Store.City)
	assert.Equal(t, "redis", cfg.Session.Store)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"google routing without key", "MOTOFRETE_ROUTING_PROVIDER", "google"},
		{"unknown geocoder", "MOTOFRETE_GEOCODING_PROVIDER", "bing"},
		{"zero detour factor", "MOTOFRETE_ROUTING_DETOUR_FACTOR", "0"},
		{"unknown session store", "MOTOFRETE_SESSION_STORE", "disk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
