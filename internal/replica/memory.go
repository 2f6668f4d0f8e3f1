package replica

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/vnbcommerce/storefront-sync/internal/cart"
	pkgerrors "github.com/vnbcommerce/storefront-sync/pkg/errors"
)

// MemoryStore keeps the replica in process memory. Used for tests and for
// sessions where persistence across restarts does not matter.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read(ctx context.Context) (*cart.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	var snap cart.Snapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeReplica, err, "decode replica")
	}
	return &snap, nil
}

func (s *MemoryStore) Write(ctx context.Context, snap *cart.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeReplica, err, "encode replica")
	}
	s.mu.Lock()
	s.data = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Erase(ctx context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
