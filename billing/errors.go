/*
errors.go - Centralized error types for billing

PURPOSE:
  All billing error types in one place. Stock-related failures surface
  the inventory package's taxonomy; this file adds the checkout-side
  failures.

POLICY:
  EmptyCart, InsufficientPayment, and item-not-in-cart are expected,
  recoverable, and leave persisted state untouched. StockConflict means
  stock moved between cart-add and checkout; any decrements already
  applied in that checkout have been rolled back before it is returned.

SEE ALSO:
  - cart.go, sales.go: Producers of these errors
  - inventory/errors.go: Stock and persistence taxonomy
*/
package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jainstore/pos-engine/inventory"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyCart is returned when checking out a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInsufficientPayment is returned when the payment does not
	// cover the cart total. No transaction is created and the cart is
	// left untouched so the caller can retry with a higher payment.
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrItemNotInCart is returned when removing a product that has no
	// line in the cart.
	ErrItemNotInCart = errors.New("item not in cart")

	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrStockConflict is returned when stock changed between
	// cart-add and checkout and a line can no longer be fulfilled.
	ErrStockConflict = errors.New("stock conflict during checkout")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientPaymentError reports a payment shortfall.
type InsufficientPaymentError struct {
	Total decimal.Decimal
	Paid  decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: total %s, paid %s",
		e.Total.StringFixed(2), e.Paid.StringFixed(2))
}

func (e *InsufficientPaymentError) Unwrap() error {
	return ErrInsufficientPayment
}

// StockConflictError reports the line that could not be fulfilled at
// checkout time. Decrements applied to earlier lines of the same
// checkout have been rolled back.
type StockConflictError struct {
	ProductID inventory.ProductID
	Cause     error
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock conflict on %s: %v", e.ProductID, e.Cause)
}

func (e *StockConflictError) Unwrap() error {
	return ErrStockConflict
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to caller input or a
// recoverable sale-time condition rather than a system failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInsufficientPayment) ||
		errors.Is(err, ErrItemNotInCart) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrStockConflict) ||
		inventory.IsClientError(err)
}
