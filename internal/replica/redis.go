package replica

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vnbcommerce/storefront-sync/internal/cart"
	pkgerrors "github.com/vnbcommerce/storefront-sync/pkg/errors"
	pkgredis "github.com/vnbcommerce/storefront-sync/pkg/redis"
)

type kvClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	ReplicaKey(slot string) string
}

// RedisStore persists the replica in a shared cache, for deployments where
// the sync layer itself runs server-side.
type RedisStore struct {
	kv  kvClient
	key string
}

func NewRedisStore(kv kvClient, slot string) (*RedisStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if slot == "" {
		return nil, fmt.Errorf("replica slot required")
	}
	return &RedisStore{kv: kv, key: kv.ReplicaKey(slot)}, nil
}

func (s *RedisStore) Read(ctx context.Context) (*cart.Snapshot, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if err == pkgredis.Nil {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeReplica, err, "read replica")
	}
	var snap cart.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeReplica, err, "decode replica")
	}
	return &snap, nil
}

func (s *RedisStore) Write(ctx context.Context, snap *cart.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeReplica, err, "encode replica")
	}
	if err := s.kv.Set(ctx, s.key, string(raw), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeReplica, err, "write replica")
	}
	return nil
}

func (s *RedisStore) Erase(ctx context.Context) error {
	if err := s.kv.Del(ctx, s.key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeReplica, err, "erase replica")
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}
