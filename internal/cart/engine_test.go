package cart

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/vnbcommerce/storefront-sync/pkg/errors"
	"github.com/vnbcommerce/storefront-sync/pkg/logger"
)

func TestRefreshAdoptsAndMirrorsGatewaySnapshot(t *testing.T) {
	t.Parallel()

	id := int64(7)
	gateway := &stubGateway{snap: &Snapshot{
		ID:    &id,
		Items: []LineItem{{ID: 1, ProductID: 42, Quantity: 2}},
		Total: decimal.NewFromInt(50),
	}}
	store := &stubStore{}
	engine := newTestEngine(t, gateway, store)

	snap := engine.Refresh(context.Background())
	if snap == nil || snap.ID == nil || *snap.ID != 7 {
		t.Fatalf("expected gateway snapshot to be adopted, got %+v", snap)
	}
	if snap.ItemCount != 2 {
		t.Fatalf("item count should be recomputed from quantities, got %d", snap.ItemCount)
	}

	mirrored := store.mustRead(t)
	if mirrored == nil || mirrored.ItemCount != 2 {
		t.Fatalf("replica should mirror the adopted snapshot, got %+v", mirrored)
	}
}

func TestRefreshFallsBackToReplicaWithoutRewriting(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{down: true}
	store := &stubStore{}
	store.seed(t, &Snapshot{Items: []LineItem{{ID: 5, ProductID: 9, Quantity: 3}}})
	engine := newTestEngine(t, gateway, store)

	snap := engine.Refresh(context.Background())
	if snap == nil || len(snap.Items) != 1 || snap.Items[0].ProductID != 9 {
		t.Fatalf("expected replica snapshot, got %+v", snap)
	}
	if store.writes != 0 {
		t.Fatalf("refresh fallback must not rewrite the replica, wrote %d times", store.writes)
	}
}

func TestRefreshFallbackWithNoReplicaYieldsNil(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, &stubGateway{down: true}, &stubStore{})
	if snap := engine.Refresh(context.Background()); snap != nil {
		t.Fatalf("expected nil snapshot with no replica, got %+v", snap)
	}
	if engine.Loading() {
		t.Fatal("loading flag should be cleared after the call")
	}
}

func TestOfflineAddItemFreshSession(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	engine := newTestEngine(t, &stubGateway{down: true}, store)

	snap := engine.AddItem(context.Background(), 42, 2, "M", "Black")
	if len(snap.Items) != 1 {
		t.Fatalf("expected a single line, got %d", len(snap.Items))
	}
	line := snap.Items[0]
	if line.ProductID != 42 || line.Quantity != 2 || line.Size != "M" || line.Color != "Black" {
		t.Fatalf("unexpected line %+v", line)
	}
	if line.Subtotal == nil || !line.Subtotal.IsZero() {
		t.Fatalf("placeholder line subtotal should be zero, got %v", line.Subtotal)
	}
	if line.ProductDetail == nil || line.ProductDetail.Name != "Product" {
		t.Fatalf("expected placeholder product detail, got %+v", line.ProductDetail)
	}
	if snap.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", snap.ItemCount)
	}

	mirrored := store.mustRead(t)
	if mirrored == nil || mirrored.ItemCount != 2 {
		t.Fatalf("replica should hold the synthesized snapshot, got %+v", mirrored)
	}
}

func TestOfflineAddItemMergesSameVariant(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	engine := newTestEngine(t, &stubGateway{down: true}, store)
	ctx := context.Background()

	engine.AddItem(ctx, 42, 2, "M", "Black")
	engine.AddItem(ctx, 42, 1, "M", "Black")
	snap := engine.AddItem(ctx, 42, 4, "M", "Black")

	if len(snap.Items) != 1 {
		t.Fatalf("same variant must merge into one line, got %d lines", len(snap.Items))
	}
	if snap.Items[0].Quantity != 7 {
		t.Fatalf("expected summed quantity 7, got %d", snap.Items[0].Quantity)
	}
	if snap.ItemCount != 7 {
		t.Fatalf("item count must equal quantity sum, got %d", snap.ItemCount)
	}
}

func TestOfflineAddItemDistinguishesVariants(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	store.seed(t, &Snapshot{Items: []LineItem{{ID: 1, ProductID: 42, Quantity: 1}}, ItemCount: 1})
	engine := newTestEngine(t, &stubGateway{down: true}, store)
	ctx := context.Background()

	// Existing line has empty size/color, so a bare add merges into it.
	snap := engine.AddItem(ctx, 42, 3, "", "")
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 4 {
		t.Fatalf("expected merged line with quantity 4, got %+v", snap.Items)
	}

	// A sized variant of the same product is a distinct line.
	snap = engine.AddItem(ctx, 42, 1, "L", "")
	if len(snap.Items) != 2 {
		t.Fatalf("expected distinct variant line, got %+v", snap.Items)
	}
	if snap.ItemCount != 5 {
		t.Fatalf("expected item count 5, got %d", snap.ItemCount)
	}
}

func TestOfflineAddItemGeneratesUniqueLocalIDs(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	gateway := &stubGateway{down: true}
	engine := newTestEngine(t, gateway, store)
	frozen := time.UnixMilli(1700000000000)
	engine.now = func() time.Time { return frozen }
	ctx := context.Background()

	engine.AddItem(ctx, 1, 1, "", "")
	snap := engine.AddItem(ctx, 2, 1, "", "")

	if len(snap.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(snap.Items))
	}
	if snap.Items[0].ID == snap.Items[1].ID {
		t.Fatalf("local ids must be unique within a snapshot, both %d", snap.Items[0].ID)
	}
}

func TestOfflineAddItemRecomputesSubtotalsFromCapturedPrice(t *testing.T) {
	t.Parallel()

	price := decimal.NewFromInt(25)
	sub := decimal.NewFromInt(25)
	store := &stubStore{}
	store.seed(t, &Snapshot{
		Items: []LineItem{{
			ID:            1,
			ProductID:     42,
			Quantity:      1,
			ProductDetail: &ProductDetail{ID: 42, Name: "Sandal", Price: price},
			Subtotal:      &sub,
		}},
		ItemCount: 1,
	})
	engine := newTestEngine(t, &stubGateway{down: true}, store)

	snap := engine.AddItem(context.Background(), 42, 2, "", "")
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %+v", snap.Items)
	}
	if snap.Items[0].Subtotal == nil || !snap.Items[0].Subtotal.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected re-approximated subtotal 75, got %v", snap.Items[0].Subtotal)
	}
	if !snap.Total.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected client-approximated total 75, got %v", snap.Total)
	}
}

func TestOfflineUpdateItemSetsQuantity(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	store.seed(t, &Snapshot{Items: []LineItem{{ID: 5, ProductID: 9, Quantity: 3}}, ItemCount: 3})
	engine := newTestEngine(t, &stubGateway{down: true}, store)

	snap := engine.UpdateItem(context.Background(), 5, 1)
	if snap.Items[0].Quantity != 1 || snap.ItemCount != 1 {
		t.Fatalf("expected quantity 1, got %+v", snap)
	}
	if store.mustRead(t).ItemCount != 1 {
		t.Fatalf("replica should mirror the update")
	}
}

func TestUpdateItemZeroRemovesLineBothPaths(t *testing.T) {
	t.Parallel()

	// Fallback path: quantity zero removes the line.
	store := &stubStore{}
	store.seed(t, &Snapshot{Items: []LineItem{{ID: 5, ProductID: 9, Quantity: 3}}, ItemCount: 3})
	offline := newTestEngine(t, &stubGateway{down: true}, store)
	fromFallback := offline.UpdateItem(context.Background(), 5, 0)

	// Gateway path: server answers with the line already removed.
	gateway := &stubGateway{snap: &Snapshot{Items: []LineItem{}, Total: decimal.Zero}}
	online := newTestEngine(t, gateway, &stubStore{})
	fromGateway := online.UpdateItem(context.Background(), 5, 0)

	if len(fromFallback.Items) != 0 || fromFallback.ItemCount != 0 {
		t.Fatalf("fallback should remove the line, got %+v", fromFallback)
	}
	if len(fromGateway.Items) != 0 || fromGateway.ItemCount != 0 {
		t.Fatalf("gateway path should remove the line, got %+v", fromGateway)
	}
}

func TestOfflineUpdateItemUnknownIDLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	store.seed(t, &Snapshot{Items: []LineItem{{ID: 5, ProductID: 9, Quantity: 3}}, ItemCount: 3})
	engine := newTestEngine(t, &stubGateway{down: true}, store)
	ctx := context.Background()

	engine.Refresh(ctx)
	before := engine.Snapshot()

	snap := engine.UpdateItem(ctx, 404, 2)
	if snap != before {
		t.Fatalf("unknown item id should leave the in-memory snapshot untouched")
	}
	if store.writes != 0 {
		t.Fatalf("unknown item id should not rewrite the replica")
	}
}

func TestOfflineRemoveItem(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	store.seed(t, &Snapshot{Items: []LineItem{
		{ID: 5, ProductID: 9, Quantity: 3},
		{ID: 6, ProductID: 10, Quantity: 1},
	}, ItemCount: 4})
	engine := newTestEngine(t, &stubGateway{down: true}, store)

	snap := engine.RemoveItem(context.Background(), 5)
	if len(snap.Items) != 1 || snap.Items[0].ID != 6 {
		t.Fatalf("expected line 5 removed, got %+v", snap.Items)
	}
	if snap.ItemCount != 1 {
		t.Fatalf("expected item count 1, got %d", snap.ItemCount)
	}
}

func TestOfflineRemoveItemUnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	store.seed(t, &Snapshot{Items: []LineItem{{ID: 5, ProductID: 9, Quantity: 3}}, ItemCount: 3})
	engine := newTestEngine(t, &stubGateway{down: true}, store)

	snap := engine.RemoveItem(context.Background(), 404)
	if len(snap.Items) != 1 || snap.Items[0].ID != 5 || snap.ItemCount != 3 {
		t.Fatalf("remove of unknown id should not change the snapshot, got %+v", snap)
	}
}

func TestOfflineClearEmptiesStateAndErasesReplica(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	store.seed(t, &Snapshot{Items: []LineItem{{ID: 5, ProductID: 9, Quantity: 3}}, ItemCount: 3})
	engine := newTestEngine(t, &stubGateway{down: true}, store)

	snap := engine.Clear(context.Background())
	if len(snap.Items) != 0 || snap.ItemCount != 0 || !snap.Total.IsZero() {
		t.Fatalf("clear must yield an empty snapshot, got %+v", snap)
	}
	if !store.erased {
		t.Fatal("clear fallback must erase the replica entry, not write an empty one")
	}
	if replica := store.mustRead(t); replica != nil {
		t.Fatalf("replica should be gone after clear, got %+v", replica)
	}
}

func TestGatewayMutationsMirrorReplica(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{snap: &Snapshot{
		Items: []LineItem{{ID: 1, ProductID: 42, Quantity: 2}},
		Total: decimal.NewFromInt(50),
	}}
	store := &stubStore{}
	engine := newTestEngine(t, gateway, store)
	ctx := context.Background()

	engine.AddItem(ctx, 42, 2, "", "")
	if mirrored := store.mustRead(t); mirrored == nil || mirrored.ItemCount != 2 {
		t.Fatalf("replica should mirror the gateway snapshot, got %+v", mirrored)
	}

	gateway.snap = &Snapshot{Items: []LineItem{}}
	engine.Clear(ctx)
	if mirrored := store.mustRead(t); mirrored == nil || mirrored.ItemCount != 0 {
		t.Fatalf("replica should mirror the cleared snapshot, got %+v", mirrored)
	}
}

func TestReplicaReadErrorDegradesToAbsent(t *testing.T) {
	t.Parallel()

	store := &stubStore{readErr: pkgerrors.New(pkgerrors.CodeReplica, "corrupt payload")}
	engine := newTestEngine(t, &stubGateway{down: true}, store)

	snap := engine.AddItem(context.Background(), 42, 1, "", "")
	if len(snap.Items) != 1 || snap.Items[0].ProductID != 42 {
		t.Fatalf("read error should degrade to an empty cart, got %+v", snap)
	}
}

func TestReplicaWriteErrorIsSwallowed(t *testing.T) {
	t.Parallel()

	store := &stubStore{writeErr: pkgerrors.New(pkgerrors.CodeReplica, "quota exceeded")}
	engine := newTestEngine(t, &stubGateway{down: true}, store)

	snap := engine.AddItem(context.Background(), 42, 1, "", "")
	if snap == nil || len(snap.Items) != 1 {
		t.Fatalf("write failure must not surface to the caller, got %+v", snap)
	}
}

func newTestEngine(t *testing.T, gateway Gateway, store ReplicaStore) *Engine {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	engine, err := NewEngine(gateway, store, logg, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

type stubGateway struct {
	down bool
	snap *Snapshot
}

func (g *stubGateway) respond() (*Snapshot, error) {
	if g.down {
		return nil, pkgerrors.New(pkgerrors.CodeGateway, "gateway offline")
	}
	// Decode through JSON so callers get an independent copy, like a real
	// HTTP round-trip would produce.
	raw, err := json.Marshal(g.snap)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (g *stubGateway) CurrentCart(ctx context.Context) (*Snapshot, error) { return g.respond() }
func (g *stubGateway) AddItem(ctx context.Context, req AddItemRequest) (*Snapshot, error) {
	return g.respond()
}
func (g *stubGateway) UpdateItem(ctx context.Context, itemID int64, quantity int) (*Snapshot, error) {
	return g.respond()
}
func (g *stubGateway) RemoveItem(ctx context.Context, itemID int64) (*Snapshot, error) {
	return g.respond()
}
func (g *stubGateway) ClearCart(ctx context.Context) (*Snapshot, error) { return g.respond() }

// stubStore keeps the replica as serialized bytes so every Read hands back an
// independent snapshot, matching the real stores.
type stubStore struct {
	data     []byte
	readErr  error
	writeErr error
	writes   int
	erased   bool
}

func (s *stubStore) Read(ctx context.Context) (*Snapshot, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	if s.data == nil {
		return nil, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *stubStore) Write(ctx context.Context, snap *Snapshot) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.data = raw
	s.writes++
	return nil
}

func (s *stubStore) Erase(ctx context.Context) error {
	s.data = nil
	s.erased = true
	return nil
}

func (s *stubStore) seed(t *testing.T, snap *Snapshot) {
	t.Helper()
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	s.data = raw
}

func (s *stubStore) mustRead(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("replica read failed: %v", err)
	}
	return snap
}
