package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the complete cart state at a point in time, either as returned
// by the gateway or synthesized from the local replica.
type Snapshot struct {
	ID        *int64          `json:"id,omitempty"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// LineItem is one cart entry. Two lines are the same line only when product,
// size and color all match.
type LineItem struct {
	ID            int64            `json:"id"`
	ProductID     int64            `json:"product"`
	ProductDetail *ProductDetail   `json:"product_detail,omitempty"`
	Quantity      int              `json:"quantity"`
	Size          string           `json:"size,omitempty"`
	Color         string           `json:"color,omitempty"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
}

// ProductDetail is the display data captured at add-time so offline carts can
// still render something.
type ProductDetail struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
	Slug  string          `json:"slug,omitempty"`
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Items:     []LineItem{},
		Total:     decimal.Zero,
		ItemCount: 0,
	}
}

// normalize repairs invariants on an adopted snapshot without touching the
// server-computed money fields: items non-nil, item count equal to the sum
// of line quantities.
func (s *Snapshot) normalize() {
	if s == nil {
		return
	}
	if s.Items == nil {
		s.Items = []LineItem{}
	}
	count := 0
	for i := range s.Items {
		count += s.Items[i].Quantity
	}
	s.ItemCount = count
}

// recomputeLocal rebuilds the derived fields after an offline mutation. Line
// subtotals are re-approximated from the captured price where one is known;
// the total is the sum of line subtotals. Placeholder lines contribute zero.
func (s *Snapshot) recomputeLocal() {
	if s == nil {
		return
	}
	if s.Items == nil {
		s.Items = []LineItem{}
	}
	count := 0
	total := decimal.Zero
	for i := range s.Items {
		line := &s.Items[i]
		count += line.Quantity
		if line.ProductDetail != nil {
			sub := line.ProductDetail.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			line.Subtotal = &sub
		}
		if line.Subtotal != nil {
			total = total.Add(*line.Subtotal)
		}
	}
	s.ItemCount = count
	s.Total = total
}

// findVariant returns the line matching the (product, size, color) tuple.
func (s *Snapshot) findVariant(productID int64, size, color string) *LineItem {
	for i := range s.Items {
		line := &s.Items[i]
		if line.ProductID == productID && line.Size == size && line.Color == color {
			return line
		}
	}
	return nil
}

func (s *Snapshot) findByID(itemID int64) *LineItem {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

func (s *Snapshot) removeByID(itemID int64) {
	kept := s.Items[:0]
	for _, line := range s.Items {
		if line.ID != itemID {
			kept = append(kept, line)
		}
	}
	s.Items = kept
}

// nextLocalID generates a timestamp-based id for a line created offline,
// bumped past any collision so ids stay unique within the snapshot.
func (s *Snapshot) nextLocalID(now time.Time) int64 {
	id := now.UnixMilli()
	for s.findByID(id) != nil {
		id++
	}
	return id
}
