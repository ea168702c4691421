/*
Package billing provides the cart and the sales ledger.

PURPOSE:
  This package converts an in-progress sale (a Cart) into a committed,
  immutable Transaction plus the matching stock decrements. The
  SalesLedger owns the append-only transaction history; the Cart is
  transient and discarded after a successful checkout.

KEY CONCEPTS IN THIS FILE (types.go):
  - CartLine: A line with a price snapshot taken at add-time
  - Transaction: An immutable record of a completed sale
  - SalesSummary: Aggregates over a time range of history

DESIGN PRINCIPLES:
  1. Snapshots, not references: Cart lines copy the product's name and
     price at add-time so recorded receipts stay stable against later
     catalog edits
  2. Immutability: Once appended, a Transaction is never edited or
     deleted
  3. Precision: decimal.Decimal for all money

SEE ALSO:
  - cart.go: Cart operations
  - sales.go: Checkout and history
  - receipt.go: Text receipt rendering
*/
package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jainstore/pos-engine/inventory"
)

// WalkInCustomer is the customer name recorded when none is supplied.
const WalkInCustomer = "Walk-in Customer"

// =============================================================================
// CART LINE - Snapshot of a product at add-time
// =============================================================================

// CartLine is one line of an in-progress or recorded sale. Name and
// UnitPrice are snapshots captured when the line was added; later
// catalog edits do not affect them.
type CartLine struct {
	ProductID inventory.ProductID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Total     decimal.Decimal // UnitPrice * Quantity, recomputed on merge
}

func lineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// =============================================================================
// TRANSACTION - Immutable record of a completed sale
// =============================================================================

// TransactionID identifies a recorded sale. IDs are time-prefixed so
// they sort by creation time.
type TransactionID string

// NewTransactionID mints an ID for a sale completed at the given time.
// The uuid suffix keeps IDs unique within the same second.
func NewTransactionID(at time.Time) TransactionID {
	return TransactionID(fmt.Sprintf("TXN_%s_%s",
		at.Format("20060102_150405"), uuid.NewString()[:8]))
}

// Transaction records a completed sale.
//
// INVARIANT: PaymentAmount >= TotalAmount. Enforced before creation;
// no transaction with insufficient payment ever exists.
// Once appended to the SalesLedger, a Transaction is immutable.
type Transaction struct {
	ID            TransactionID
	CustomerName  string
	CreatedAt     time.Time
	Lines         []CartLine // ordered as they appeared in the cart
	TotalAmount   decimal.Decimal
	PaymentAmount decimal.Decimal
	ChangeDue     decimal.Decimal // PaymentAmount - TotalAmount
}

// =============================================================================
// SALES SUMMARY - Derived aggregate over history
// =============================================================================

// SalesSummary aggregates transactions in a time range.
// Average is zero when Transactions is zero; check Transactions before
// reading it.
type SalesSummary struct {
	Transactions int
	Revenue      decimal.Decimal
	Average      decimal.Decimal
}
