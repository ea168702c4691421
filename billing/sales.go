/*
sales.go - Checkout and the append-only sales history

PURPOSE:
  The SalesLedger is the source of truth for completed sales. Checkout
  is the one operation that crosses component boundaries: it validates
  payment, decrements stock for every cart line, appends an immutable
  Transaction to history, persists the full history, and clears the
  cart - as one logical unit.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: No edit, no delete, ever
  2. PAYMENT: No transaction exists with PaymentAmount < TotalAmount
  3. EXACTLY-ONCE STOCK: A committed sale decrements each product by
     exactly its line quantity; a failed checkout decrements nothing

TWO-PHASE STOCK COMMIT:
  Stock moves between cart-add and checkout are a known race (nothing
  is reserved). Checkout therefore runs in two phases:
    Phase 1 - re-validate every line against current stock
    Phase 2 - apply the decrements
  If any decrement still fails, decrements already applied in this
  checkout are compensated with the opposite adjustment and the
  checkout fails with a StockConflictError. The same compensation runs
  if persisting the history fails, so in-memory, on-disk, and stock
  state never diverge silently.

SEE ALSO:
  - cart.go: The input to checkout
  - inventory/stock.go: The adjustment primitive
*/
package billing

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jainstore/pos-engine/inventory"
)

// =============================================================================
// SALES STORE - Whole-collection persistence
// =============================================================================

// SalesStore persists the full transaction history. Like the catalog
// store, it rewrites the whole collection on every save and must do so
// atomically. History order is preserved.
type SalesStore interface {
	Load(ctx context.Context) ([]Transaction, error)
	Save(ctx context.Context, history []Transaction) error
}

// =============================================================================
// SALES LEDGER
// =============================================================================

// SalesLedger owns the append-only sequence of completed transactions.
type SalesLedger struct {
	store   SalesStore
	stock   *inventory.StockLedger
	history []Transaction
}

// NewSalesLedger creates a sales ledger and loads the persisted
// history. A failed load is lenient: history starts empty and the
// failure is logged.
func NewSalesLedger(ctx context.Context, store SalesStore, stock *inventory.StockLedger) *SalesLedger {
	s := &SalesLedger{store: store, stock: stock}

	loaded, err := store.Load(ctx)
	if err != nil {
		log.Printf("billing: failed to load sales history, starting empty: %v", err)
		return s
	}
	s.history = loaded
	return s
}

// Checkout converts the cart into a committed Transaction.
//
//   - ErrEmptyCart if the cart has no lines
//   - InsufficientPaymentError if payment < total (cart untouched)
//   - StockConflictError if a line no longer fits current stock; any
//     decrements applied before the failure are rolled back
//   - PersistenceError if saving the history fails; stock decrements
//     are rolled back and the transaction is not kept
//
// On success the transaction is appended to history, the history is
// persisted, the cart is cleared, and the transaction is returned for
// receipt generation. An empty customerName records WalkInCustomer.
func (s *SalesLedger) Checkout(ctx context.Context, cart *Cart, payment decimal.Decimal, customerName string) (Transaction, error) {
	if cart.IsEmpty() {
		return Transaction{}, ErrEmptyCart
	}

	lines := cart.Lines()
	total := cart.Total()
	if payment.LessThan(total) {
		return Transaction{}, &InsufficientPaymentError{Total: total, Paid: payment}
	}
	if customerName == "" {
		customerName = WalkInCustomer
	}

	// Phase 1: every line must fit current stock before anything moves.
	catalog := s.stock.Catalog()
	for _, line := range lines {
		product, ok := catalog.Get(line.ProductID)
		if !ok {
			return Transaction{}, &StockConflictError{
				ProductID: line.ProductID,
				Cause:     inventory.ErrProductNotFound,
			}
		}
		if product.Quantity < line.Quantity {
			return Transaction{}, &StockConflictError{
				ProductID: line.ProductID,
				Cause: &inventory.InsufficientStockError{
					ProductID: line.ProductID,
					Available: product.Quantity,
					Requested: line.Quantity,
				},
			}
		}
	}

	// Phase 2: apply the decrements, compensating on failure.
	var applied []CartLine
	for _, line := range lines {
		if _, err := s.stock.Adjust(ctx, line.ProductID, -line.Quantity); err != nil {
			s.compensate(ctx, applied)
			return Transaction{}, &StockConflictError{ProductID: line.ProductID, Cause: err}
		}
		applied = append(applied, line)
	}

	now := time.Now()
	tx := Transaction{
		ID:            NewTransactionID(now),
		CustomerName:  customerName,
		CreatedAt:     now,
		Lines:         lines,
		TotalAmount:   total,
		PaymentAmount: payment,
		ChangeDue:     payment.Sub(total),
	}

	s.history = append(s.history, tx)
	if err := s.store.Save(ctx, s.history); err != nil {
		s.history = s.history[:len(s.history)-1]
		s.compensate(ctx, applied)
		return Transaction{}, &inventory.PersistenceError{Op: "save sales history", Err: err}
	}

	cart.Clear()
	return tx, nil
}

// compensate restores stock for decrements applied by a failed checkout.
func (s *SalesLedger) compensate(ctx context.Context, applied []CartLine) {
	for _, line := range applied {
		if _, err := s.stock.Adjust(ctx, line.ProductID, line.Quantity); err != nil {
			log.Printf("billing: failed to roll back stock for %s (+%d): %v",
				line.ProductID, line.Quantity, err)
		}
	}
}

// History returns a copy of all transactions in append order.
func (s *SalesLedger) History() []Transaction {
	out := make([]Transaction, len(s.history))
	copy(out, s.history)
	return out
}

// Get returns the transaction with the given ID.
func (s *SalesLedger) Get(id TransactionID) (Transaction, bool) {
	for _, tx := range s.history {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// Summary aggregates the history within [from, to]. Nil bounds are
// open; supplied bounds are inclusive. Average is zero when no
// transactions match.
func (s *SalesLedger) Summary(from, to *time.Time) SalesSummary {
	summary := SalesSummary{Revenue: decimal.Zero, Average: decimal.Zero}
	for _, tx := range s.history {
		if from != nil && tx.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && tx.CreatedAt.After(*to) {
			continue
		}
		summary.Transactions++
		summary.Revenue = summary.Revenue.Add(tx.TotalAmount)
	}
	if summary.Transactions > 0 {
		summary.Average = summary.Revenue.Div(decimal.NewFromInt(int64(summary.Transactions)))
	}
	return summary
}
