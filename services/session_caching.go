package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

type SessionCache struct {
	client *redis.Client
}

var GlobalSessionCache *SessionCache

// NewSessionCache creates and initializes a new session cache
func NewSessionCache(redisURL string) (*SessionCache, error) {
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

	return &SessionCache{client: client}, nil
}

// SetSession caches an individual session with a TTL matching its expiry.
func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session has already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}

	key := fmt.Sprintf("session:%s", session.SessionID)
	return sc.client.Set(context.Background(), key, data, ttl).Err()
}

// GetSession retrieves a session from cache. A miss returns (nil, nil).
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	key := fmt.Sprintf("session:%s", sessionID)
	data, err := sc.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached session: %v", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached session: %v", err)
	}
	return &session, nil
}

// DeleteSession drops a session from the cache.
func (sc *SessionCache) DeleteSession(sessionID string) error {
	key := fmt.Sprintf("session:%s", sessionID)
	return sc.client.Del(context.Background(), key).Err()
}
