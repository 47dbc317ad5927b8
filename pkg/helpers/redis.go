package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client; an empty addr yields nil and
// every Redis backed feature is skipped.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func keyRevoked(jti string) string { return "auth:revoked:" + jti }

// RevokeToken puts a token id on the denylist until the token would have
// expired anyway.
func RevokeToken(ctx context.Context, rdb *redis.Client, jti string, exp time.Time) error {
	if rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, keyRevoked(jti), 1, ttl).Err()
}

// IsTokenRevoked reports whether jti was revoked. Without Redis nothing is.
func IsTokenRevoked(ctx context.Context, rdb *redis.Client, jti string) (bool, error) {
	if rdb == nil || jti == "" {
		return false, nil
	}
	err := rdb.Get(ctx, keyRevoked(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
