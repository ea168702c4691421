/*
Package inventory provides the product catalog and stock ledger.

PURPOSE:
  This package owns product records: their creation, mutation, removal,
  and persistence. It also owns the single rule that makes the rest of
  the system safe - stock never goes negative. The StockLedger is the
  only writer of quantities, and it evaluates the low-stock alert rule
  after every successful mutation, whatever the cause.

KEY CONCEPTS IN THIS FILE (product.go):
  - Product: A catalog record with a decimal price and integer stock
  - ProductPatch: Explicit partial update (only the fields the domain
    allows to change)

DESIGN PRINCIPLES:
  1. Precision: Prices use decimal.Decimal, never floats
  2. Reject, don't clamp: A mutation that would violate an invariant
     (negative stock, negative price) fails and changes nothing
  3. Whole-catalog persistence: Every mutating call rewrites the full
     catalog through the CatalogStore

SEE ALSO:
  - catalog.go: Catalog operations (add, update, remove, search)
  - stock.go: Stock mutation and low-stock alerting
  - errors.go: Error taxonomy
*/
package inventory

import (
	"github.com/shopspring/decimal"
)

// ProductID uniquely identifies a product. Immutable after creation.
type ProductID string

const (
	// DefaultCategory is used when no category is supplied.
	DefaultCategory = "General"

	// DefaultStockThreshold is the low-stock alert threshold assigned
	// to new products.
	DefaultStockThreshold = 10
)

// =============================================================================
// PRODUCT - Catalog record
// =============================================================================

// Product is a single catalog record.
//
// INVARIANT: Quantity >= 0 always. Mutations that would violate this
// are rejected, never clamped.
type Product struct {
	ID                ProductID
	Name              string
	Price             decimal.Decimal
	Quantity          int
	Category          string
	MinStockThreshold int
}

// LowOnStock reports whether the product is at or below its threshold.
func (p Product) LowOnStock() bool {
	return p.Quantity <= p.MinStockThreshold
}

// =============================================================================
// PRODUCT PATCH - Explicit partial update
// =============================================================================

// ProductPatch lists the fields a caller may change on an existing
// product. Nil fields are left untouched. The ID and the stock
// threshold are not patchable.
type ProductPatch struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int
	Category *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Quantity == nil && p.Category == nil
}
