package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "breachwatch:"

// RedisStorage is a Storage backed by a shared Redis instance, for
// deployments where multiple hosts should reuse one response cache.
// Keys are namespaced under "breachwatch:". The Storage interface carries
// no context, so operations run under context.Background.
type RedisStorage struct {
	rdb *redis.Client
}

// NewRedisStorage wraps an existing Redis client as a Storage.
func NewRedisStorage(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

// Read implements Storage.
func (s *RedisStorage) Read(key string) ([]byte, error) {
	data, err := s.rdb.Get(context.Background(), redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write implements Storage. Entries carry no Redis expiration; freshness
// is decided by the Store's policy on read.
func (s *RedisStorage) Write(key string, data []byte) error {
	return s.rdb.Set(context.Background(), redisKeyPrefix+key, data, 0).Err()
}

// Clear implements Storage, deleting every key in the namespace.
func (s *RedisStorage) Clear() error {
	ctx := context.Background()
	iter := s.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
