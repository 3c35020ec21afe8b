package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

type RedisTokenBlacklist struct {
	Client *redis.Client
}

// TokenBlacklist is the global instance
var TokenBlacklist *RedisTokenBlacklist

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(redisURL string) (*RedisTokenBlacklist, error) {
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

	return &RedisTokenBlacklist{Client: client}, nil
}

// BlacklistTokens adds both access and refresh tokens to the blacklist
func BlacklistTokens(accessToken, refreshToken string) error {
	if TokenBlacklist == nil {
		return fmt.Errorf("token blacklist not initialized")
	}
	if err := TokenBlacklist.blacklistSingleToken(accessToken, "access"); err != nil {
		return fmt.Errorf("failed to blacklist access token: %v", err)
	}
	if err := TokenBlacklist.blacklistSingleToken(refreshToken, "refresh"); err != nil {
		return fmt.Errorf("failed to blacklist refresh token: %v", err)
	}
	return nil
}

// BlacklistRefreshToken invalidates a single refresh token, used when
// rotating the token pair.
func BlacklistRefreshToken(refreshToken string) error {
	if TokenBlacklist == nil {
		return fmt.Errorf("token blacklist not initialized")
	}
	return TokenBlacklist.blacklistSingleToken(refreshToken, "refresh")
}

// blacklistSingleToken adds a single token to the blacklist until its expiration
func (tb *RedisTokenBlacklist) blacklistSingleToken(tokenString string, tokenType string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})

	if err != nil {
		// An already-expired token needs no blacklist entry
		if !strings.Contains(err.Error(), "token is expired") {
			return fmt.Errorf("failed to parse token: %v", err)
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fmt.Errorf("failed to get claims from token")
	}

	var expirationTime time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expirationTime = time.Unix(int64(exp), 0)
	} else {
		expirationTime = time.Now().Add(24 * time.Hour)
	}

	ctx := context.Background()
	key := fmt.Sprintf("blacklist:%s:%s", tokenType, tokenString)

	if err := tb.Client.Set(ctx, key, "true", time.Until(expirationTime)).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in Redis: %v", err)
	}

	return nil
}

// IsTokenBlacklisted checks if a token is in the blacklist
func IsTokenBlacklisted(tokenString string) bool {
	if TokenBlacklist == nil {
		return false
	}
	return TokenBlacklist.isTokenBlacklisted(tokenString)
}

func (tb *RedisTokenBlacklist) isTokenBlacklisted(tokenString string) bool {
	ctx := context.Background()

	accessKey := fmt.Sprintf("blacklist:access:%s", tokenString)
	refreshKey := fmt.Sprintf("blacklist:refresh:%s", tokenString)

	// Check both keys in one round trip
	pipe := tb.Client.Pipeline()
	accessCmd := pipe.Exists(ctx, accessKey)
	refreshCmd := pipe.Exists(ctx, refreshKey)

	if _, err := pipe.Exec(ctx); err != nil {
		utils.TrackError("cache", "blacklist_lookup_failed")
		return false
	}

	return accessCmd.Val() > 0 || refreshCmd.Val() > 0
}

// IsConnected checks if the Redis connection is alive
func (tb *RedisTokenBlacklist) IsConnected() bool {
	if tb == nil || tb.Client == nil {
		return false
	}
	ctx := context.Background()
	return tb.Client.Ping(ctx).Err() == nil
}
