package abuse

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares limiter state across service instances. Entries expire
// via key TTL, so Prune has nothing to do.
type RedisStore struct {
	Client    *redis.Client
	KeyPrefix string
}

func (s *RedisStore) key(k string) string {
	prefix := s.KeyPrefix
	if prefix == "" {
		prefix = "abuse:"
	}
	return prefix + k
}

func (s *RedisStore) Get(ctx context.Context, key string) (State, bool, error) {
	raw, err := s.Client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, err
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, false, err
	}
	return state, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, state State, ttl time.Duration) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(key), raw, ttl).Err()
}

func (s *RedisStore) Prune(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}
