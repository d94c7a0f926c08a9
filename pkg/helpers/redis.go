package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// KeyResetToken is the Redis key holding a pending password-reset token.
func KeyResetToken(token string) string {
	return "pwd:reset:token:" + token
}

// RedisSetString stores a string value with a TTL.
func RedisSetString(ctx context.Context, rdb *redis.Client, key, value string, ttl time.Duration) error {
	return rdb.Set(ctx, key, value, ttl).Err()
}

// RedisGetString fetches a string value; found=false when the key is absent.
func RedisGetString(ctx context.Context, rdb *redis.Client, key string) (string, bool, error) {
	res, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return res, true, nil
}

func RedisDel(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}
