/*
cart.go - The in-progress sale

PURPOSE:
  A Cart accumulates lines for the active checkout session. It is
  keyed by product ID - re-adding a product merges into the existing
  line - while preserving insertion order for receipts.

PRICE SNAPSHOTS:
  AddItem copies the product's name and price into the line at that
  moment. The cart never holds live references to catalog state, so a
  price edit after add-to-cart does not change what the customer pays.

STOCK IS NOT RESERVED:
  AddItem validates the requested quantity against the catalog's
  current stock, but nothing is held. Stock can move between cart-add
  and checkout; the SalesLedger re-validates every line at checkout
  and fails with a StockConflict if it no longer fits.

SEE ALSO:
  - sales.go: Checkout consumes and clears the cart
*/
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jainstore/pos-engine/inventory"
)

// =============================================================================
// CART
// =============================================================================

// Cart holds the lines of an in-progress sale. Transient: discarded on
// successful checkout, explicit Clear, or session end.
type Cart struct {
	catalog *inventory.Catalog
	lines   []CartLine // insertion order; at most one line per product
}

// NewCart creates an empty cart validated against the given catalog.
func NewCart(catalog *inventory.Catalog) *Cart {
	return &Cart{catalog: catalog}
}

// AddItem adds quantity units of a product to the cart.
//
//   - ErrInvalidQuantity if quantity <= 0
//   - ErrProductNotFound if the product is absent from the catalog
//   - InsufficientStockError if the merged line quantity exceeds the
//     catalog's current stock
//
// If the product is already in the cart the quantities merge into one
// line and its total is recomputed from the original price snapshot;
// otherwise a new line is appended with a snapshot taken now.
func (c *Cart) AddItem(id inventory.ProductID, quantity int) (CartLine, error) {
	if quantity <= 0 {
		return CartLine{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	product, ok := c.catalog.Get(id)
	if !ok {
		return CartLine{}, fmt.Errorf("product %s: %w", id, inventory.ErrProductNotFound)
	}

	merged := quantity
	if existing := c.find(id); existing >= 0 {
		merged += c.lines[existing].Quantity
	}
	if merged > product.Quantity {
		return CartLine{}, &inventory.InsufficientStockError{
			ProductID: id,
			Available: product.Quantity,
			Requested: merged,
		}
	}

	if i := c.find(id); i >= 0 {
		c.lines[i].Quantity = merged
		c.lines[i].Total = lineTotal(c.lines[i].UnitPrice, merged)
		return c.lines[i], nil
	}

	line := CartLine{
		ProductID: id,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		Total:     lineTotal(product.Price, quantity),
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// RemoveItem removes a product's entire line from the cart.
// Fails with ErrItemNotInCart if the product has no line.
func (c *Cart) RemoveItem(id inventory.ProductID) error {
	i := c.find(id)
	if i < 0 {
		return fmt.Errorf("product %s: %w", id, ErrItemNotInCart)
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// ReduceItem removes quantity units from a product's line. A quantity
// at or above the line's quantity removes the whole line; otherwise the
// line is decremented and its total recomputed.
func (c *Cart) ReduceItem(id inventory.ProductID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	i := c.find(id)
	if i < 0 {
		return fmt.Errorf("product %s: %w", id, ErrItemNotInCart)
	}
	if quantity >= c.lines[i].Quantity {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity -= quantity
	c.lines[i].Total = lineTotal(c.lines[i].UnitPrice, c.lines[i].Quantity)
	return nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total returns the sum of all line totals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = nil
}

// find returns the index of the line for id, or -1.
func (c *Cart) find(id inventory.ProductID) int {
	for i, l := range c.lines {
		if l.ProductID == id {
			return i
		}
	}
	return -1
}
