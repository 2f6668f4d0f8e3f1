// Package replica provides device-level persistence for the last-known cart
// snapshot. Each store holds a single keyed slot; the reconciliation engine
// is the only writer.
package replica

import (
	"context"
)

// Pinger exposes the health-check surface for replica backends.
type Pinger interface {
	Ping(ctx context.Context) error
}
