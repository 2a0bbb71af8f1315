// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key written to Redis
const DefaultRedisPrefix = "truco:"

// Redis is a Store backed by Redis strings. Update uses WATCH/MULTI/EXEC and
// retries when a watched key changes underneath it.
type Redis struct {
	client     *redis.Client
	prefix     string
	maxRetries int
}

// NewRedis connects to the Redis server at url and checks it is reachable
func NewRedis(ctx context.Context, url, prefix string, maxRetries int) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisFromClient(client, prefix, maxRetries), nil
}

// NewRedisFromClient wraps an existing client
func NewRedisFromClient(client *redis.Client, prefix string, maxRetries int) *Redis {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Redis{client: client, prefix: prefix, maxRetries: maxRetries}
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Update(ctx context.Context, keys []string, fn UpdateFunc) error {
	watched := make([]string, len(keys))
	for i, k := range keys {
		watched[i] = r.key(k)
	}

	txf := func(tx *redis.Tx) error {
		cur := make(map[string][]byte, len(keys))
		for i, k := range keys {
			b, err := tx.Get(ctx, watched[i]).Bytes()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return fmt.Errorf("redis get %s: %w", k, err)
			}
			cur[k] = b
		}

		next, err := fn(cur)
		if err != nil {
			return err
		}
		if len(next) == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for k, v := range next {
				pipe.Set(ctx, r.key(k), v, 0)
			}
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, watched...)
		if errors.Is(err, redis.TxFailedErr) {
			slog.Debug("redis update lost a race, retrying", "attempt", attempt, "keys", keys)
			continue
		}
		return err
	}
	return ErrConflict
}

func (r *Redis) Close() error {
	return r.client.Close()
}
