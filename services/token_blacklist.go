package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevocationCache is a fast-path cache of revoked refresh-token JTIs.
// Mongo holds the durable revocation state; a Redis miss always falls back
// to the repository, so losing Redis never un-revokes a token.
type RedisRevocationCache struct {
	Client *redis.Client
}

// RevocationCache is the global instance; nil when Redis is not configured.
var RevocationCache *RedisRevocationCache

func NewRevocationCache(redisURL string) (*RedisRevocationCache, error) {
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

	return &RedisRevocationCache{Client: client}, nil
}

// MarkRevoked caches a revoked JTI until the token would have expired anyway.
func MarkRevoked(ctx context.Context, jti string, expiresAt time.Time) {
	if RevocationCache == nil {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	key := revocationKey(jti)
	// Best effort; the durable record was already written.
	_ = RevocationCache.Client.Set(ctx, key, "revoked", ttl).Err()
}

// IsRevokedCached reports whether the JTI is known-revoked. A false return
// means "not cached", not "not revoked".
func IsRevokedCached(ctx context.Context, jti string) bool {
	if RevocationCache == nil {
		return false
	}
	exists, err := RevocationCache.Client.Exists(ctx, revocationKey(jti)).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

func revocationKey(jti string) string {
	return fmt.Sprintf("revoked:refresh:%s", jti)
}

func (rc *RedisRevocationCache) IsConnected() bool {
	if rc == nil || rc.Client == nil {
		return false
	}
	ctx := context.Background()
	return rc.Client.Ping(ctx).Err() == nil
}

func (rc *RedisRevocationCache) Close() error {
	return rc.Client.Close()
}
