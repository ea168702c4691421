// Package memory provides in-memory store implementations (for testing/dev).
package memory

import (
	"context"
	"sync"

	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
)

// =============================================================================
// CATALOG STORE
// =============================================================================

// Catalog implements inventory.CatalogStore in memory.
type Catalog struct {
	mu       sync.RWMutex
	products []inventory.Product
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Load(_ context.Context) ([]inventory.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]inventory.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c *Catalog) Save(_ context.Context, products []inventory.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = make([]inventory.Product, len(products))
	copy(c.products, products)
	return nil
}

// =============================================================================
// SALES STORE
// =============================================================================

// Sales implements billing.SalesStore in memory.
type Sales struct {
	mu      sync.RWMutex
	history []billing.Transaction
}

func NewSales() *Sales {
	return &Sales{}
}

func (s *Sales) Load(_ context.Context) ([]billing.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]billing.Transaction, len(s.history))
	copy(out, s.history)
	return out, nil
}

func (s *Sales) Save(_ context.Context, history []billing.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = make([]billing.Transaction, len(history))
	copy(s.history, history)
	return nil
}

// =============================================================================
// ALERT LOG
// =============================================================================

// Alerts implements inventory.AlertLog in memory. Tests use Alerts()
// to assert which low-stock alerts were emitted.
type Alerts struct {
	mu     sync.RWMutex
	alerts []inventory.LowStockAlert
}

func NewAlerts() *Alerts {
	return &Alerts{}
}

func (a *Alerts) Append(_ context.Context, alert inventory.LowStockAlert) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, alert)
	return nil
}

func (a *Alerts) Alerts() []inventory.LowStockAlert {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]inventory.LowStockAlert, len(a.alerts))
	copy(out, a.alerts)
	return out
}
