// README: Session stores holding at most one delivery result per session.
package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"motofrete/internal/types"
)

// SessionStore is the per-session state container. Put replaces any
// existing result; Delete is idempotent; Get returns ErrNoResult when empty.
type SessionStore interface {
	Get(ctx context.Context, sessionID types.ID) (*Result, error)
	Put(ctx context.Context, sessionID types.ID, r *Result) error
	Delete(ctx context.Context, sessionID types.ID) error
}

type MemoryStore struct {
	mu      sync.RWMutex
	results map[types.ID]Result
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[types.ID]Result)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID types.ID) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[sessionID]
	if !ok {
		return nil, ErrNoResult
	}
	return &r, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID types.ID, r *Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[sessionID] = *r
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, sessionID)
	return nil
}

const sessionKeyPrefix = "delivery:session:%s"

type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(redis *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: redis, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID types.ID) (*Result, error) {
	val, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoResult
	}
	if err != nil {
		return nil, err
	}
	var r Result
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, fmt.Errorf("decode session result: %w", err)
	}
	return &r, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID types.ID, r *Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID types.ID) error {
	return s.redis.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID types.ID) string {
	return fmt.Sprintf(sessionKeyPrefix, string(sessionID))
}
