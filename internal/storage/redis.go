package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage is a KV backed by Redis (or a Redis-compatible hosted service).
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage connects to the Redis instance described by rawURL
// (redis:// or rediss://) and pings it.
func NewRedisStorage(ctx context.Context, rawURL string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	s := NewRedisStorageFromClient(redis.NewClient(opts))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.PingContext(pingCtx); err != nil {
		_ = s.client.Close()
		return nil, err
	}

	return s, nil
}

// NewRedisStorageFromClient wraps an existing client.
func NewRedisStorageFromClient(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", wrapRedis("get", key, err)
	}
	return v, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return wrapRedis("set", key, err)
	}
	return nil
}

func (r *RedisStorage) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return wrapRedis("del", keys[0], err)
	}
	return nil
}

func (r *RedisStorage) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, wrapRedis("incr", key, err)
	}
	return n, nil
}

func (r *RedisStorage) LPush(ctx context.Context, key, value string) (int64, error) {
	n, err := r.client.LPush(ctx, key, value).Result()
	if err != nil {
		return 0, wrapRedis("lpush", key, err)
	}
	return n, nil
}

func (r *RedisStorage) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	vals, err := r.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, wrapRedis("lrange", key, err)
	}
	return vals, nil
}

func (r *RedisStorage) SAdd(ctx context.Context, key, member string) error {
	if err := r.client.SAdd(ctx, key, member).Err(); err != nil {
		return wrapRedis("sadd", key, err)
	}
	return nil
}

func (r *RedisStorage) SRem(ctx context.Context, key, member string) error {
	if err := r.client.SRem(ctx, key, member).Err(); err != nil {
		return wrapRedis("srem", key, err)
	}
	return nil
}

func (r *RedisStorage) SMembers(ctx context.Context, key string) ([]string, error) {
	vals, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, wrapRedis("smembers", key, err)
	}
	return vals, nil
}

// Keys walks the keyspace with SCAN so large databases are not blocked.
func (r *RedisStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, wrapRedis("scan", prefix, err)
	}

	return keys, nil
}

func (r *RedisStorage) PingContext(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w: %w", ErrUnavailable, err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}

// wrapRedis marks network and timeout failures as ErrUnavailable.
func wrapRedis(op, key string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("redis %s %s: %w: %w", op, key, ErrUnavailable, err)
	}
	return fmt.Errorf("redis %s %s: %w", op, key, err)
}
