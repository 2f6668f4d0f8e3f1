package cart

import "context"

// AddItemRequest carries the payload for a gateway add-item call.
type AddItemRequest struct {
	ProductID int64
	Quantity  int
	Size      string
	Color     string
}

// Gateway is the remote cart API. Every call returns the full authoritative
// snapshot on success; any transport failure or non-2xx response comes back
// as a gateway error, which the engine treats uniformly.
type Gateway interface {
	CurrentCart(ctx context.Context) (*Snapshot, error)
	AddItem(ctx context.Context, req AddItemRequest) (*Snapshot, error)
	UpdateItem(ctx context.Context, itemID int64, quantity int) (*Snapshot, error)
	RemoveItem(ctx context.Context, itemID int64) (*Snapshot, error)
	ClearCart(ctx context.Context) (*Snapshot, error)
}

// ReplicaStore is the single device-level persistence slot for the last-known
// cart. Read returns (nil, nil) when no replica exists.
type ReplicaStore interface {
	Read(ctx context.Context) (*Snapshot, error)
	Write(ctx context.Context, snap *Snapshot) error
	Erase(ctx context.Context) error
}
