package cart

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vnbcommerce/storefront-sync/pkg/logger"
	"github.com/vnbcommerce/storefront-sync/pkg/metrics"
)

const (
	opRefresh    = "refresh"
	opAddItem    = "add_item"
	opUpdateItem = "update_item"
	opRemoveItem = "remove_item"
	opClear      = "clear"
)

// Display name for a line created offline; the catalog is unreachable so the
// engine has nothing better to show.
const offlineProductName = "Product"

// Engine owns the in-memory cart snapshot shared by all UI consumers. Every
// mutation goes through the gateway first; when the gateway fails the engine
// synthesizes the result from the local replica instead, so callers never see
// an error, only state transitions.
//
// Mutations are not queued. Concurrent calls each run their own gateway
// round-trip and the last snapshot to be adopted wins, which the domain
// tolerates (a shopping cart, not a ledger).
type Engine struct {
	gateway Gateway
	replica ReplicaStore
	logg    *logger.Logger
	metrics *metrics.CartSyncMetrics
	now     func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot
	loading  atomic.Bool
}

// NewEngine builds a reconciliation engine backed by the provided stack.
func NewEngine(gateway Gateway, replica ReplicaStore, logg *logger.Logger, m *metrics.CartSyncMetrics) (*Engine, error) {
	if gateway == nil {
		return nil, fmt.Errorf("cart gateway required")
	}
	if replica == nil {
		return nil, fmt.Errorf("replica store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Engine{
		gateway: gateway,
		replica: replica,
		logg:    logg,
		metrics: m,
		now:     time.Now,
	}, nil
}

// Snapshot returns the current in-memory snapshot, nil before the first
// refresh when neither the gateway nor a replica produced one. Callers must
// treat it as read-only.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// Loading reports whether any operation is in flight.
func (e *Engine) Loading() bool {
	return e.loading.Load()
}

// Refresh fetches the authoritative snapshot. On gateway failure the last
// persisted replica (or nil) becomes the in-memory state; the replica itself
// is left untouched since it is already the source.
func (e *Engine) Refresh(ctx context.Context) *Snapshot {
	e.loading.Store(true)
	defer e.loading.Store(false)
	ctx = e.logg.WithOperation(ctx, opRefresh)

	snap, err := e.roundTrip(opRefresh, func() (*Snapshot, error) {
		return e.gateway.CurrentCart(ctx)
	})
	if err != nil {
		e.fellBack(ctx, opRefresh, err)
		local := e.readReplica(ctx)
		e.adopt(local)
		return local
	}

	e.metrics.IncOutcome(opRefresh, metrics.OutcomeSuccess)
	snap.normalize()
	e.persist(ctx, snap)
	e.adopt(snap)
	return snap
}

// AddItem adds quantity of the product variant. Offline, the request is
// merged into the replica: an existing (product, size, color) line gains
// quantity, otherwise a placeholder line is appended.
func (e *Engine) AddItem(ctx context.Context, productID int64, quantity int, size, color string) *Snapshot {
	e.loading.Store(true)
	defer e.loading.Store(false)
	ctx = e.logg.WithOperation(ctx, opAddItem)

	snap, err := e.roundTrip(opAddItem, func() (*Snapshot, error) {
		return e.gateway.AddItem(ctx, AddItemRequest{
			ProductID: productID,
			Quantity:  quantity,
			Size:      size,
			Color:     color,
		})
	})
	if err != nil {
		e.fellBack(ctx, opAddItem, err)
		local := e.readReplica(ctx)
		if local == nil {
			local = emptySnapshot()
		}
		if line := local.findVariant(productID, size, color); line != nil {
			line.Quantity += quantity
		} else {
			zero := decimal.Zero
			local.Items = append(local.Items, LineItem{
				ID:        local.nextLocalID(e.now()),
				ProductID: productID,
				Quantity:  quantity,
				Size:      size,
				Color:     color,
				ProductDetail: &ProductDetail{
					ID:    productID,
					Name:  offlineProductName,
					Price: decimal.Zero,
				},
				Subtotal: &zero,
			})
		}
		local.recomputeLocal()
		e.persist(ctx, local)
		e.adopt(local)
		return local
	}

	e.metrics.IncOutcome(opAddItem, metrics.OutcomeSuccess)
	snap.normalize()
	e.persist(ctx, snap)
	e.adopt(snap)
	return snap
}

// UpdateItem sets the line's quantity. A quantity of zero or below is a
// removal intent, not an error. Offline, a missing replica or unknown item id
// leaves the state untouched.
func (e *Engine) UpdateItem(ctx context.Context, itemID int64, quantity int) *Snapshot {
	e.loading.Store(true)
	defer e.loading.Store(false)
	ctx = e.logg.WithOperation(ctx, opUpdateItem)

	snap, err := e.roundTrip(opUpdateItem, func() (*Snapshot, error) {
		return e.gateway.UpdateItem(ctx, itemID, quantity)
	})
	if err != nil {
		e.fellBack(ctx, opUpdateItem, err)
		local := e.readReplica(ctx)
		if local == nil || local.findByID(itemID) == nil {
			return e.Snapshot()
		}
		if quantity <= 0 {
			local.removeByID(itemID)
		} else {
			local.findByID(itemID).Quantity = quantity
		}
		local.recomputeLocal()
		e.persist(ctx, local)
		e.adopt(local)
		return local
	}

	e.metrics.IncOutcome(opUpdateItem, metrics.OutcomeSuccess)
	snap.normalize()
	e.persist(ctx, snap)
	e.adopt(snap)
	return snap
}

// RemoveItem deletes the line. Offline, an unknown item id is a no-op on the
// snapshot content.
func (e *Engine) RemoveItem(ctx context.Context, itemID int64) *Snapshot {
	e.loading.Store(true)
	defer e.loading.Store(false)
	ctx = e.logg.WithOperation(ctx, opRemoveItem)

	snap, err := e.roundTrip(opRemoveItem, func() (*Snapshot, error) {
		return e.gateway.RemoveItem(ctx, itemID)
	})
	if err != nil {
		e.fellBack(ctx, opRemoveItem, err)
		local := e.readReplica(ctx)
		if local == nil {
			return e.Snapshot()
		}
		local.removeByID(itemID)
		local.recomputeLocal()
		e.persist(ctx, local)
		e.adopt(local)
		return local
	}

	e.metrics.IncOutcome(opRemoveItem, metrics.OutcomeSuccess)
	snap.normalize()
	e.persist(ctx, snap)
	e.adopt(snap)
	return snap
}

// Clear empties the cart. Offline, the replica entry is erased rather than
// set to an empty snapshot: clear failure still honors the user's intent.
func (e *Engine) Clear(ctx context.Context) *Snapshot {
	e.loading.Store(true)
	defer e.loading.Store(false)
	ctx = e.logg.WithOperation(ctx, opClear)

	snap, err := e.roundTrip(opClear, func() (*Snapshot, error) {
		return e.gateway.ClearCart(ctx)
	})
	if err != nil {
		e.fellBack(ctx, opClear, err)
		empty := emptySnapshot()
		e.erase(ctx)
		e.adopt(empty)
		return empty
	}

	e.metrics.IncOutcome(opClear, metrics.OutcomeSuccess)
	snap.normalize()
	e.persist(ctx, snap)
	e.adopt(snap)
	return snap
}

func (e *Engine) roundTrip(op string, fn func() (*Snapshot, error)) (*Snapshot, error) {
	start := e.now()
	snap, err := fn()
	e.metrics.ObserveGateway(op, e.now().Sub(start))
	return snap, err
}

func (e *Engine) adopt(snap *Snapshot) {
	e.mu.Lock()
	e.snapshot = snap
	e.mu.Unlock()
}

func (e *Engine) fellBack(ctx context.Context, op string, err error) {
	e.metrics.IncOutcome(op, metrics.OutcomeFallback)
	ctx = e.logg.WithField(ctx, "cause", err.Error())
	e.logg.Warn(ctx, "gateway unavailable, using local replica")
}

// readReplica degrades every failure to "no replica present".
func (e *Engine) readReplica(ctx context.Context) *Snapshot {
	snap, err := e.replica.Read(ctx)
	if err != nil {
		e.metrics.IncReplicaError("read")
		e.logg.Warn(ctx, "replica read failed, treating as absent")
		return nil
	}
	return snap
}

func (e *Engine) persist(ctx context.Context, snap *Snapshot) {
	if err := e.replica.Write(ctx, snap); err != nil {
		e.metrics.IncReplicaError("write")
		e.logg.Warn(ctx, "replica write failed")
	}
}

func (e *Engine) erase(ctx context.Context) {
	if err := e.replica.Erase(ctx); err != nil {
		e.metrics.IncReplicaError("erase")
		e.logg.Warn(ctx, "replica erase failed")
	}
}
