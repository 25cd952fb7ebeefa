package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/slackfaq/pkg/etcd"
)

// Open initializes the backend that was selected with the CLI flags, and
// wraps it with a [Store]. The returned function releases the backend's
// client, and should be called when the server shuts down.
func Open(ctx context.Context, cmd *cli.Command) (*Store, func() error, error) {
	prefix := cmd.String("store-prefix")

	switch b := cmd.String("store-backend"); b {
	case BackendEtcd:
		c, err := etcd.NewClient(cmd)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Strs("endpoints", c.Endpoints()).Msg("using etcd as the FAQ store")
		return New(NewEtcdBackend(c), prefix), c.Close, nil

	case BackendRedis:
		c := redis.NewClient(&redis.Options{
			Addr:     cmd.String("redis-addr"),
			Password: cmd.String("redis-password"),
			DB:       cmd.Int("redis-db"),
		})
		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info().Str("addr", c.Options().Addr).Msg("using Redis as the FAQ store")
		return New(NewRedisBackend(c), prefix), c.Close, nil

	case BackendMemory:
		log.Warn().Msg("using a non-persistent in-memory FAQ store")
		return New(NewMemoryBackend(), prefix), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", b)
	}
}
