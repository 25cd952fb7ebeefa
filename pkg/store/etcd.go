package store

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const (
	etcdTimeout = 3 * time.Second
)

// EtcdBackend is a [Backend] that stores documents in etcd.
type EtcdBackend struct {
	kv clientv3.KV
}

func NewEtcdBackend(kv clientv3.KV) *EtcdBackend {
	return &EtcdBackend{kv: kv}
}

func (b *EtcdBackend) Scan(ctx context.Context, prefix string) ([][]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, etcdTimeout)
	defer cancel()

	resp, err := b.kv.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("etcd get: %w", err)
	}

	vs := make([][]byte, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		vs = append(vs, kv.Value)
	}
	return vs, nil
}

// Create writes the value in a transaction that succeeds
// only if the key was never created (or has been deleted).
func (b *EtcdBackend) Create(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, etcdTimeout)
	defer cancel()

	resp, err := b.kv.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(key), "=", 0)).
		Then(clientv3.OpPut(key, string(value))).
		Commit()
	if err != nil {
		return fmt.Errorf("etcd txn: %w", err)
	}
	if !resp.Succeeded {
		return ErrExists
	}

	return nil
}
