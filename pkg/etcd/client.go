package etcd

import (
	"fmt"

	"github.com/urfave/cli/v3"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// NewClient initializes an etcd gRPC client, based on the CLI flags
// defined in [Flags]. The caller is responsible for closing it.
func NewClient(cmd *cli.Command) (*clientv3.Client, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints:   cmd.StringSlice("etcd-endpoint-urls"),
		DialTimeout: cmd.Duration("etcd-dial-timeout"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize etcd client: %w", err)
	}
	return c, nil
}
