package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache keeps computed dashboard statistics in Redis for a short TTL so
// repeated dashboard loads do not recompute over the full activity set.
// Activity mutations call Invalidate; the TTL caps staleness if an
// invalidation is missed.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var GlobalStatsCache *StatsCache

func NewStatsCache(redisURL string, ttl time.Duration) (*StatsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &StatsCache{client: client, ttl: ttl}, nil
}

// Get unmarshals the cached stats payload for a user into dst.
// Returns false on a miss.
func (sc *StatsCache) Get(uid string, dst interface{}) (bool, error) {
	data, err := sc.client.Get(context.Background(), sc.key(uid)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the stats payload for a user.
func (sc *StatsCache) Set(uid string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return sc.client.Set(context.Background(), sc.key(uid), data, sc.ttl).Err()
}

// Invalidate drops the cached stats for a user after a mutation.
func (sc *StatsCache) Invalidate(uid string) error {
	return sc.client.Del(context.Background(), sc.key(uid)).Err()
}

func (sc *StatsCache) key(uid string) string {
	return fmt.Sprintf("stats:%s", uid)
}
