/*
store.go - Persistence interfaces for the catalog and the alert log

PURPOSE:
  Defines the boundary between the inventory domain and storage.
  The catalog is persisted at whole-collection granularity: every
  mutating call hands the store the full product set and the store
  rewrites it. No incremental format exists.

TORN-WRITE PROTECTION:
  Because the whole file is rewritten each time, implementations MUST
  make Save atomic (write to a temporary file, then rename) so a
  failure mid-write never leaves a torn catalog behind.

LOAD LENIENCY:
  A failed Load is not fatal - callers start from an empty collection.
  A failed Save is always surfaced.

IMPLEMENTATIONS:
  - store/jsonfile: Flat JSON files + plain-text alert log
  - store/sqlite:   Embedded database backend
  - store/memory:   In-memory, for tests

SEE ALSO:
  - catalog.go: The only caller of CatalogStore
  - stock.go: The only caller of AlertLog
*/
package inventory

import (
	"context"
	"time"
)

// =============================================================================
// CATALOG STORE - Whole-collection persistence
// =============================================================================

// CatalogStore persists the full product catalog.
type CatalogStore interface {
	// Load returns every persisted product. A missing backing file is
	// not an error; it returns an empty slice.
	Load(ctx context.Context) ([]Product, error)

	// Save rewrites the entire catalog. Implementations must be atomic:
	// either the new catalog fully replaces the old one, or the old one
	// is left intact.
	Save(ctx context.Context, products []Product) error
}

// =============================================================================
// ALERT LOG - Append-only low-stock notifications
// =============================================================================

// LowStockAlert is a timestamped record of a product crossing at or
// below its stock threshold.
type LowStockAlert struct {
	At        time.Time
	ProductID ProductID
	Name      string
	Quantity  int
	Threshold int
}

// AlertLog records low-stock alerts. Append-only; alerts are
// observational and a failed append never blocks a stock adjustment.
type AlertLog interface {
	Append(ctx context.Context, alert LowStockAlert) error
}
