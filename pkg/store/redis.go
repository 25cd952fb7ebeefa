package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisTimeout   = 3 * time.Second
	redisScanCount = 100
)

// RedisBackend is a [Backend] that stores documents in Redis string keys.
type RedisBackend struct {
	client redis.Cmdable
}

func NewRedisBackend(c redis.Cmdable) *RedisBackend {
	return &RedisBackend{client: c}
}

func (b *RedisBackend) Scan(ctx context.Context, prefix string) ([][]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	var keys []string
	iter := b.client.Scan(ctx, 0, escapeGlob(prefix)+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return [][]byte{}, nil
	}

	vals, err := b.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	vs := make([][]byte, 0, len(vals))
	for _, v := range vals {
		// Keys are never deleted by us, but someone else might.
		if s, ok := v.(string); ok {
			vs = append(vs, []byte(s))
		}
	}
	return vs, nil
}

func (b *RedisBackend) Create(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	ok, err := b.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return ErrExists
	}

	return nil
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob escapes the special characters of Redis's glob-style patterns.
func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
