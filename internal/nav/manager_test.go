package nav

import (
	"context"
	"io"
	"testing"

	"github.com/vnbcommerce/storefront-sync/pkg/logger"
)

type countingScroller struct {
	resets int
}

func (s *countingScroller) ResetScroll(ctx context.Context) { s.resets++ }

func newTestManager(t *testing.T) (*Manager, *countingScroller) {
	t.Helper()
	scroller := &countingScroller{}
	m, err := NewManager(logger.New(logger.Options{ServiceName: "test", Output: io.Discard}), scroller)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m, scroller
}

func TestInitialState(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)
	state := m.State()
	if state.CurrentPage != PageHome {
		t.Fatalf("expected home, got %q", state.CurrentPage)
	}
	if state.Depth != 1 {
		t.Fatalf("expected history depth 1, got %d", state.Depth)
	}
	if state.PageParams == nil || len(state.PageParams) != 0 {
		t.Fatalf("expected empty params map, got %v", state.PageParams)
	}
}

func TestNavigatePromotesReservedKeys(t *testing.T) {
	t.Parallel()

	m, scroller := newTestManager(t)
	state := m.NavigateTo(context.Background(), PageProduct, map[string]string{
		"productId": "42",
		"ref":       "featured",
	})

	if state.CurrentPage != PageProduct || state.ProductID != "42" {
		t.Fatalf("unexpected state %+v", state)
	}
	if _, ok := state.PageParams["productId"]; ok {
		t.Fatalf("productId should not stay in params: %v", state.PageParams)
	}
	if state.PageParams["ref"] != "featured" {
		t.Fatalf("expected extra param preserved, got %v", state.PageParams)
	}
	if scroller.resets != 1 {
		t.Fatalf("expected one scroll reset, got %d", scroller.resets)
	}
}

func TestNavigateWithoutSelectionClearsIt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, _ := newTestManager(t)
	m.NavigateTo(ctx, PageProduct, map[string]string{"productId": "42"})

	state := m.NavigateTo(ctx, PageCart, nil)
	if state.ProductID != "" || state.CategoryID != "" {
		t.Fatalf("expected selection cleared, got %+v", state)
	}
}

func TestGoBackAtRootIsNoop(t *testing.T) {
	t.Parallel()

	m, scroller := newTestManager(t)
	state := m.GoBack(context.Background())
	if state.CurrentPage != PageHome || state.Depth != 1 {
		t.Fatalf("expected unchanged root state, got %+v", state)
	}
	if scroller.resets != 0 {
		t.Fatalf("no-op goBack should not scroll, got %d resets", scroller.resets)
	}
}

func TestGoBackDropsParamsButKeepsSelection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, _ := newTestManager(t)
	m.NavigateTo(ctx, PageCategory, map[string]string{"categoryId": "hoodies"})
	m.NavigateTo(ctx, PageProduct, map[string]string{"productId": "42", "ref": "grid"})

	state := m.GoBack(ctx)
	if state.CurrentPage != PageCategory {
		t.Fatalf("expected category page, got %q", state.CurrentPage)
	}
	if len(state.PageParams) != 0 {
		t.Fatalf("expected params dropped, got %v", state.PageParams)
	}
	// The selection fields outlive the pop.
	if state.ProductID != "42" {
		t.Fatalf("expected productId kept, got %q", state.ProductID)
	}
	if state.Depth != 2 {
		t.Fatalf("expected depth 2, got %d", state.Depth)
	}
}

func TestHistoryNeverEmpties(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, _ := newTestManager(t)
	m.NavigateTo(ctx, PageCart, nil)

	for i := 0; i < 5; i++ {
		m.GoBack(ctx)
	}
	state := m.State()
	if state.Depth != 1 || state.CurrentPage != PageHome {
		t.Fatalf("expected to settle at home with depth 1, got %+v", state)
	}
}

func TestNavigateRequiresNoScroller(t *testing.T) {
	t.Parallel()

	m, err := NewManager(logger.New(logger.Options{ServiceName: "test", Output: io.Discard}), nil)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	state := m.NavigateTo(context.Background(), PageContact, nil)
	if state.CurrentPage != PageContact {
		t.Fatalf("unexpected state %+v", state)
	}
}
