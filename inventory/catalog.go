/*
catalog.go - The product catalog

PURPOSE:
  The Catalog is the exclusive owner of product records. It keeps the
  working set in memory and rewrites the whole collection through its
  CatalogStore after every mutation.

SAVE FAILURE HANDLING:
  If a save fails, the in-memory mutation is rolled back and a
  PersistenceError is returned. The catalog never reports success for
  a state that is not on disk.

LOAD FAILURE HANDLING:
  A failed load starts the catalog from empty. This mirrors the
  bootstrap path: no file yet means no products yet.

SEE ALSO:
  - stock.go: StockLedger, the only writer of quantities
  - store.go: CatalogStore contract
*/
package inventory

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG
// =============================================================================

// Catalog owns product records and their persistence.
//
// Single-writer model: operations run to completion before returning and
// no internal locking is performed. Callers that need concurrent access
// must serialize externally.
type Catalog struct {
	store    CatalogStore
	products map[ProductID]Product
}

// NewCatalog creates a catalog backed by the given store and loads the
// persisted product set. A failed load is lenient: the catalog starts
// empty and the failure is logged.
func NewCatalog(ctx context.Context, store CatalogStore) *Catalog {
	c := &Catalog{
		store:    store,
		products: make(map[ProductID]Product),
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		log.Printf("inventory: failed to load catalog, starting empty: %v", err)
		return c
	}
	for _, p := range loaded {
		c.products[p.ID] = p
	}
	return c
}

// =============================================================================
// MUTATIONS - Each one persists the full catalog
// =============================================================================

// Add creates a new product and persists the catalog.
// Fails with ErrDuplicateProduct if the ID is already present.
// An empty category defaults to DefaultCategory; new products get
// DefaultStockThreshold.
func (c *Catalog) Add(ctx context.Context, id ProductID, name string, price decimal.Decimal, quantity int, category string) (Product, error) {
	if err := validateProductInput(id, name, price, quantity); err != nil {
		return Product{}, err
	}
	if _, exists := c.products[id]; exists {
		return Product{}, fmt.Errorf("product %s: %w", id, ErrDuplicateProduct)
	}

	if category == "" {
		category = DefaultCategory
	}
	p := Product{
		ID:                id,
		Name:              name,
		Price:             price,
		Quantity:          quantity,
		Category:          category,
		MinStockThreshold: DefaultStockThreshold,
	}

	c.products[id] = p
	if err := c.persist(ctx); err != nil {
		delete(c.products, id)
		return Product{}, err
	}
	return p, nil
}

// Update merges the supplied patch fields into an existing product and
// persists the catalog. Unset fields are left untouched.
// Fails with ErrProductNotFound if the ID is absent.
func (c *Catalog) Update(ctx context.Context, id ProductID, patch ProductPatch) (Product, error) {
	prev, exists := c.products[id]
	if !exists {
		return Product{}, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}

	next := prev
	if patch.Name != nil {
		if *patch.Name == "" {
			return Product{}, fmt.Errorf("%w: name must not be empty", ErrInvalidProduct)
		}
		next.Name = *patch.Name
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return Product{}, fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
		}
		next.Price = *patch.Price
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return Product{}, fmt.Errorf("%w: quantity must not be negative", ErrInvalidProduct)
		}
		next.Quantity = *patch.Quantity
	}
	if patch.Category != nil && *patch.Category != "" {
		next.Category = *patch.Category
	}

	c.products[id] = next
	if err := c.persist(ctx); err != nil {
		c.products[id] = prev
		return Product{}, err
	}
	return next, nil
}

// Remove deletes a product and persists the catalog.
// Fails with ErrProductNotFound if the ID is absent.
func (c *Catalog) Remove(ctx context.Context, id ProductID) error {
	prev, exists := c.products[id]
	if !exists {
		return fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}

	delete(c.products, id)
	if err := c.persist(ctx); err != nil {
		c.products[id] = prev
		return err
	}
	return nil
}

// =============================================================================
// READS - In-memory, no persistence involved
// =============================================================================

// Get returns the product with the given ID.
func (c *Catalog) Get(id ProductID) (Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// List returns all products in catalog iteration order.
func (c *Catalog) List() []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out
}

// Search returns products whose ID, name, or category contains the
// query, case-insensitively. No order is guaranteed.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(query)
	var out []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(string(p.ID)), q) ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// LowStock returns every product at or below its stock threshold.
func (c *Catalog) LowStock() []Product {
	var out []Product
	for _, p := range c.products {
		if p.LowOnStock() {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// =============================================================================
// INTERNAL
// =============================================================================

// persist rewrites the full catalog through the store.
func (c *Catalog) persist(ctx context.Context) error {
	if err := c.store.Save(ctx, c.List()); err != nil {
		return &PersistenceError{Op: "save catalog", Err: err}
	}
	return nil
}

func validateProductInput(id ProductID, name string, price decimal.Decimal, quantity int) error {
	if id == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidProduct)
	}
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidProduct)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidProduct)
	}
	return nil
}
