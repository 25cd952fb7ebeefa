package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/tzrikka/slackfaq/pkg/faq"
)

// fakeKV implements the subset of [clientv3.KV] that [EtcdBackend] uses:
// prefix reads, and create-if-absent transactions.
type fakeKV struct {
	clientv3.KV

	mu   sync.Mutex
	data map[string]string
	err  error
}

func (f *fakeKV) Get(_ context.Context, key string, _ ...clientv3.OpOption) (*clientv3.GetResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	resp := &clientv3.GetResponse{}
	for k, v := range f.data {
		if strings.HasPrefix(k, key) {
			resp.Kvs = append(resp.Kvs, &mvccpb.KeyValue{Key: []byte(k), Value: []byte(v)})
		}
	}
	return resp, nil
}

func (f *fakeKV) Txn(_ context.Context) clientv3.Txn {
	return &fakeTxn{kv: f}
}

type fakeTxn struct {
	kv   *fakeKV
	cmps []clientv3.Cmp
	ops  []clientv3.Op
}

func (t *fakeTxn) If(cs ...clientv3.Cmp) clientv3.Txn {
	t.cmps = append(t.cmps, cs...)
	return t
}

func (t *fakeTxn) Then(ops ...clientv3.Op) clientv3.Txn {
	t.ops = append(t.ops, ops...)
	return t
}

func (t *fakeTxn) Else(_ ...clientv3.Op) clientv3.Txn {
	return t
}

func (t *fakeTxn) Commit() (*clientv3.TxnResponse, error) {
	t.kv.mu.Lock()
	defer t.kv.mu.Unlock()

	if t.kv.err != nil {
		return nil, t.kv.err
	}

	// Only "key was never created" comparisons are supported.
	for _, c := range t.cmps {
		if _, ok := t.kv.data[string(c.Key)]; ok {
			return &clientv3.TxnResponse{Succeeded: false}, nil
		}
	}
	for _, op := range t.ops {
		t.kv.data[string(op.KeyBytes())] = string(op.ValueBytes())
	}
	return &clientv3.TxnResponse{Succeeded: true}, nil
}

func TestEtcdBackend(t *testing.T) {
	kv := &fakeKV{data: map[string]string{}}
	s := New(NewEtcdBackend(kv), "etcd-test")

	require.NoError(t, s.Save(t.Context(), &faq.Entry{Tag: "vpn", Title: "VPN access", Version: 1}))
	require.NoError(t, s.Save(t.Context(), &faq.Entry{Tag: "vpn", Title: "VPN access v2", Version: 2}))
	assert.Contains(t, kv.data, "etcd-test/entries/vpn/0000000002")

	err := s.Save(t.Context(), &faq.Entry{Tag: "vpn", Title: "Too late", Version: 2})
	assert.ErrorIs(t, err, faq.ErrVersionTaken)

	e, ok, err := s.Current(t.Context(), "vpn")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "VPN access v2", e.Title)

	es, err := s.FindByTag(t.Context(), "vpn")
	require.NoError(t, err)
	assert.Len(t, es, 2)
}

func TestEtcdBackendErrors(t *testing.T) {
	kv := &fakeKV{data: map[string]string{}, err: errors.New("etcdserver: request timed out")}
	b := NewEtcdBackend(kv)

	_, err := b.Scan(t.Context(), "prefix")
	assert.ErrorContains(t, err, "etcd get")

	err = b.Create(t.Context(), "key", []byte("value"))
	assert.ErrorContains(t, err, "etcd txn")
	assert.NotErrorIs(t, err, ErrExists)
}
