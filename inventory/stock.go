/*
stock.go - Stock mutation and the low-stock alert rule

PURPOSE:
  The StockLedger is the single writer of product quantities. Every
  stock change - restock or sale - flows through Adjust, which enforces
  the non-negative invariant and evaluates the low-stock rule after
  every successful mutation, regardless of cause.

INVARIANT:
  Quantity never goes negative. An adjustment that would cross zero is
  rejected in full; no partial adjustment is applied.

ALERTING:
  When a successful adjustment leaves the quantity at or below the
  product's threshold, a timestamped alert is appended to the AlertLog.
  Alerts are observational: a failed append is logged and dropped, it
  never blocks or fails the adjustment.

SEE ALSO:
  - catalog.go: Quantity writes go through the catalog's store
  - store.go: AlertLog contract
*/
package inventory

import (
	"context"
	"fmt"
	"log"
	"time"
)

// =============================================================================
// STOCK LEDGER
// =============================================================================

// StockLedger mutates product stock levels through the catalog.
type StockLedger struct {
	catalog *Catalog
	alerts  AlertLog // may be nil; alerting is then disabled
}

// NewStockLedger creates a stock ledger over the given catalog.
// Pass a nil alert log to disable low-stock alerting.
func NewStockLedger(catalog *Catalog, alerts AlertLog) *StockLedger {
	return &StockLedger{catalog: catalog, alerts: alerts}
}

// Catalog returns the catalog this ledger mutates.
func (l *StockLedger) Catalog() *Catalog {
	return l.catalog
}

// Adjust changes a product's quantity by delta (positive for restock,
// negative for sale) and persists the catalog. All-or-nothing:
//
//   - ErrProductNotFound if the product is absent
//   - InsufficientStockError if quantity+delta would be negative
//   - PersistenceError if the save fails (the quantity is rolled back)
//
// On success, the low-stock rule is evaluated and an alert emitted if
// the new quantity is at or below the threshold.
func (l *StockLedger) Adjust(ctx context.Context, id ProductID, delta int) (Product, error) {
	prev, exists := l.catalog.products[id]
	if !exists {
		return Product{}, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}

	newQuantity := prev.Quantity + delta
	if newQuantity < 0 {
		return Product{}, &InsufficientStockError{
			ProductID: id,
			Available: prev.Quantity,
			Requested: -delta,
		}
	}

	next := prev
	next.Quantity = newQuantity
	l.catalog.products[id] = next

	if err := l.catalog.persist(ctx); err != nil {
		l.catalog.products[id] = prev
		return Product{}, err
	}

	if next.LowOnStock() {
		l.emitAlert(ctx, next)
	}
	return next, nil
}

// emitAlert appends a low-stock alert. Failures are logged, never returned.
func (l *StockLedger) emitAlert(ctx context.Context, p Product) {
	if l.alerts == nil {
		return
	}
	alert := LowStockAlert{
		At:        time.Now(),
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Threshold: p.MinStockThreshold,
	}
	if err := l.alerts.Append(ctx, alert); err != nil {
		log.Printf("inventory: failed to record low-stock alert for %s: %v", p.ID, err)
	}
}
