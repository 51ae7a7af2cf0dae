package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// redisKV implements KV on a Redis instance. Records are plain string
// values; ListKeys uses SCAN (never KEYS) so a large session history does
// not block the server.
type redisKV struct {
	rdb *redis.Client
}

// NewRedis wraps an already-connected go-redis client as a KV driver.
func NewRedis(rdb *redis.Client) KV {
	return &redisKV{rdb: rdb}
}

func (s *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Key: key, Err: err}
	}
	return val, nil
}

func (s *redisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *redisKV) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, &StorageError{Op: "list", Key: prefix, Err: err}
	}
	return keys, nil
}

func (s *redisKV) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, &StorageError{Op: "getmany", Key: keys[0], Err: err}
	}
	out := make(map[string][]byte, len(keys))
	for i, v := range vals {
		if v == nil {
			continue // key vanished between SCAN and MGET
		}
		if s, ok := v.(string); ok {
			out[keys[i]] = []byte(s)
		}
	}
	return out, nil
}
