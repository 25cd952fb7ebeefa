package store

import (
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

const (
	BackendEtcd   = "etcd"
	BackendRedis  = "redis"
	BackendMemory = "memory"

	DefaultRedisAddr = "localhost:6379"
)

// Flags defines CLI flags to select and configure the entry store's
// backend. These flags can also be set using environment variables
// and the application's configuration file. The etcd backend's
// flags are defined separately, in the "etcd" package.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "store-backend",
			Usage: `FAQ entry store backend: "etcd", "redis", or "memory" (non-persistent)`,
			Value: BackendEtcd,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("FAQ_STORE_BACKEND"),
				toml.TOML("store.backend", configFilePath),
			),
			Validator: func(s string) error {
				switch s {
				case BackendEtcd, BackendRedis, BackendMemory:
					return nil
				default:
					return fmt.Errorf("unsupported store backend %q", s)
				}
			},
		},
		&cli.StringFlag{
			Name:  "store-prefix",
			Usage: "key prefix of all the FAQ documents in the store backend",
			Value: DefaultPrefix,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("FAQ_STORE_PREFIX"),
				toml.TOML("store.prefix", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "redis-addr",
			Usage: "Redis server address",
			Value: DefaultRedisAddr,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("REDIS_ADDR"),
				toml.TOML("redis.addr", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "redis-password",
			Usage: "Redis server password",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("REDIS_PASSWORD"),
				toml.TOML("redis.password", configFilePath),
			),
		},
		&cli.IntFlag{
			Name:  "redis-db",
			Usage: "Redis logical database number",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("REDIS_DB"),
				toml.TOML("redis.db", configFilePath),
			),
		},
	}
}
