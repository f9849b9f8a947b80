// README: Geocode cache backed by Redis.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"motofrete/internal/types"
)

const geocodeKeyPrefix = "geocode:%s"

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, query string) (types.Point, bool, error) {
	val, err := s.redis.Get(ctx, geocodeKey(query)).Bytes()
	if err == redis.Nil {
		return types.Point{}, false, nil
	}
	if err != nil {
		return types.Point{}, false, err
	}
	var p types.Point
	if err := json.Unmarshal(val, &p); err != nil {
		return types.Point{}, false, fmt.Errorf("decode cached geocode: %w", err)
	}
	return p, true, nil
}

func (s *Store) Put(ctx context.Context, query string, p types.Point) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, geocodeKey(query), data, s.ttl).Err()
}

func geocodeKey(query string) string {
	return fmt.Sprintf(geocodeKeyPrefix, strings.ToLower(strings.TrimSpace(query)))
}
