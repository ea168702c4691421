package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainstore/pos-engine/inventory"
	"github.com/jainstore/pos-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStockLedger(t *testing.T) (*inventory.StockLedger, *inventory.Catalog, *memory.Alerts) {
	t.Helper()
	catalog := inventory.NewCatalog(context.Background(), memory.NewCatalog())
	alerts := memory.NewAlerts()
	return inventory.NewStockLedger(catalog, alerts), catalog, alerts
}

// =============================================================================
// ADJUSTMENT ARITHMETIC
// =============================================================================

func TestStockLedger_Adjust_AppliesDelta(t *testing.T) {
	ledger, catalog, _ := newTestStockLedger(t)
	mustAdd(t, catalog, "P001", "Laptop", 45000, 15, "Electronics")
	ctx := context.Background()

	p, err := ledger.Adjust(ctx, "P001", 5)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Quantity, "restock adds")

	p, err = ledger.Adjust(ctx, "P001", -8)
	require.NoError(t, err)
	assert.Equal(t, 12, p.Quantity, "sale subtracts")

	stored, _ := catalog.Get("P001")
	assert.Equal(t, 12, stored.Quantity, "adjustment written through the catalog")
}

func TestStockLedger_Adjust_NotFound(t *testing.T) {
	ledger, _, _ := newTestStockLedger(t)

	_, err := ledger.Adjust(context.Background(), "missing", 1)

	assert.ErrorIs(t, err, inventory.ErrProductNotFound)
}

func TestStockLedger_Adjust_NeverGoesNegative(t *testing.T) {
	// GIVEN: A product with 5 units
	// WHEN: Adjusting by -6
	// THEN: InsufficientStock, and the quantity is unchanged (all-or-nothing)

	ledger, catalog, _ := newTestStockLedger(t)
	mustAdd(t, catalog, "P001", "Laptop", 45000, 5, "Electronics")

	_, err := ledger.Adjust(context.Background(), "P001", -6)

	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	p, _ := catalog.Get("P001")
	assert.Equal(t, 5, p.Quantity, "no partial adjustment on failure")
}

func TestStockLedger_Adjust_DrainToZeroAllowed(t *testing.T) {
	ledger, catalog, _ := newTestStockLedger(t)
	mustAdd(t, catalog, "P001", "Laptop", 45000, 5, "Electronics")

	p, err := ledger.Adjust(context.Background(), "P001", -5)

	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
}

// =============================================================================
// LOW-STOCK ALERTING
// =============================================================================

func TestStockLedger_Adjust_EmitsAlertAtThreshold(t *testing.T) {
	// GIVEN: A product at quantity 10 with threshold 10
	// WHEN: Adjusting by -1
	// THEN: Quantity is 9 <= threshold, so an alert is recorded

	ledger, catalog, alerts := newTestStockLedger(t)
	mustAdd(t, catalog, "P002", "Mouse", 500, 11, "Electronics")

	_, err := ledger.Adjust(context.Background(), "P002", -2)
	require.NoError(t, err)

	recorded := alerts.Alerts()
	require.Len(t, recorded, 1)
	assert.Equal(t, inventory.ProductID("P002"), recorded[0].ProductID)
	assert.Equal(t, 9, recorded[0].Quantity)
	assert.Equal(t, inventory.DefaultStockThreshold, recorded[0].Threshold)
	assert.False(t, recorded[0].At.IsZero())
}

func TestStockLedger_Adjust_AlertOnEveryMutationBelowThreshold(t *testing.T) {
	// The rule is evaluated after every mutation, restock included.

	ledger, catalog, alerts := newTestStockLedger(t)
	mustAdd(t, catalog, "P003", "Pen", 10, 3, "Stationery")
	ctx := context.Background()

	_, err := ledger.Adjust(ctx, "P003", -1) // 2 <= 10
	require.NoError(t, err)
	_, err = ledger.Adjust(ctx, "P003", 4) // 6 <= 10: restock still alerts
	require.NoError(t, err)
	_, err = ledger.Adjust(ctx, "P003", 20) // 26 > 10: no alert
	require.NoError(t, err)

	assert.Len(t, alerts.Alerts(), 2)
}

func TestStockLedger_Adjust_NoAlertAboveThreshold(t *testing.T) {
	ledger, catalog, alerts := newTestStockLedger(t)
	mustAdd(t, catalog, "P001", "Laptop", 45000, 15, "Electronics")

	_, err := ledger.Adjust(context.Background(), "P001", -2)
	require.NoError(t, err)

	assert.Empty(t, alerts.Alerts())
}

func TestStockLedger_NilAlertLog(t *testing.T) {
	catalog := inventory.NewCatalog(context.Background(), memory.NewCatalog())
	ledger := inventory.NewStockLedger(catalog, nil)
	_, err := catalog.Add(context.Background(), "P003", "Pen",
		decimal.NewFromInt(10), 3, "Stationery")
	require.NoError(t, err)

	p, err := ledger.Adjust(context.Background(), "P003", -1)

	require.NoError(t, err, "alerting disabled must not affect adjustment")
	assert.Equal(t, 2, p.Quantity)
}
