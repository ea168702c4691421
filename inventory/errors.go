/*
errors.go - Centralized error types for the inventory domain

PURPOSE:
  All inventory error types in one place. The billing package wraps or
  re-reports these where a sale touches stock.

ERROR CATEGORIES:
  1. Validation errors - Expected, recoverable, persisted state untouched
  2. Persistence errors - A save that failed and was surfaced loudly

USAGE:
  if errors.Is(err, inventory.ErrInsufficientStock) {
      var stockErr *inventory.InsufficientStockError
      errors.As(err, &stockErr)
      // stockErr.Available, stockErr.Requested
  }

SEE ALSO:
  - catalog.go, stock.go: Producers of these errors
  - billing/errors.go: Billing-side taxonomy
*/
package inventory

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDuplicateProduct is returned when adding a product whose ID
	// already exists in the catalog.
	ErrDuplicateProduct = errors.New("product already exists")

	// ErrProductNotFound is returned when the referenced product is
	// absent from the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a stock mutation would
	// drive a quantity below zero. No partial adjustment is applied.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidProduct is returned for inputs that fail validation
	// before reaching the catalog (empty ID, negative price or quantity).
	ErrInvalidProduct = errors.New("invalid product")

	// ErrPersistence is returned when a save fails. Unlike load
	// failures (which start from empty state), save failures are always
	// surfaced: silently continuing would let in-memory and on-disk
	// state diverge.
	ErrPersistence = errors.New("persistence failure")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientStockError reports a stock shortage with the amounts involved.
type InsufficientStockError struct {
	ProductID ProductID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// PersistenceError reports a failed save with its cause. The mutation
// that triggered the save has been rolled back in memory.
type PersistenceError struct {
	Op  string // e.g. "save catalog", "save sales history"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than a system failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrDuplicateProduct) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidProduct)
}
