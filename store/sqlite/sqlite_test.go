package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
	"github.com/jainstore/pos-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// =============================================================================
// CATALOG
// =============================================================================

func TestCatalog_EmptyDatabaseLoadsEmpty(t *testing.T) {
	st := newTestStore(t)

	products, err := st.Catalog().Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalog_SaveThenLoad(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	in := []inventory.Product{
		{
			ID:                "P001",
			Name:              "Laptop",
			Price:             decimal.RequireFromString("45000.00"),
			Quantity:          15,
			Category:          "Electronics",
			MinStockThreshold: 10,
		},
		{
			ID:                "P005",
			Name:              "Pen",
			Price:             decimal.RequireFromString("10.00"),
			Quantity:          3,
			Category:          "Stationery",
			MinStockThreshold: 5,
		},
	}
	require.NoError(t, st.Catalog().Save(ctx, in))

	out, err := st.Catalog().Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	byID := make(map[inventory.ProductID]inventory.Product)
	for _, p := range out {
		byID[p.ID] = p
	}
	laptop := byID["P001"]
	assert.Equal(t, "Laptop", laptop.Name)
	assert.True(t, laptop.Price.Equal(in[0].Price), "price survives the TEXT round-trip exactly")
	assert.Equal(t, 15, laptop.Quantity)
	assert.Equal(t, 5, byID["P005"].MinStockThreshold)
}

func TestCatalog_SaveReplacesTableContents(t *testing.T) {
	// Save persists the whole collection: products absent from the
	// slice are gone after the save, matching the flat-file semantics.

	st := newTestStore(t)
	ctx := context.Background()
	catalog := st.Catalog()

	require.NoError(t, catalog.Save(ctx, []inventory.Product{
		{ID: "P001", Name: "Laptop", Price: decimal.NewFromInt(45000), Quantity: 15, Category: "Electronics", MinStockThreshold: 10},
		{ID: "P002", Name: "Mouse", Price: decimal.NewFromInt(500), Quantity: 8, Category: "Electronics", MinStockThreshold: 10},
	}))
	require.NoError(t, catalog.Save(ctx, []inventory.Product{
		{ID: "P002", Name: "Mouse", Price: decimal.NewFromInt(450), Quantity: 6, Category: "Electronics", MinStockThreshold: 10},
	}))

	out, err := catalog.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, inventory.ProductID("P002"), out[0].ID)
	assert.True(t, out[0].Price.Equal(decimal.NewFromInt(450)))
}

// =============================================================================
// SALES
// =============================================================================

func TestSales_SaveThenLoadPreservesOrderAndLines(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	at := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	in := []billing.Transaction{
		{
			ID:           "TXN_20250601_143000_aaaa1111",
			CustomerName: billing.WalkInCustomer,
			CreatedAt:    at,
			Lines: []billing.CartLine{
				{ProductID: "P001", Name: "Laptop", UnitPrice: decimal.RequireFromString("45000.00"), Quantity: 1, Total: decimal.RequireFromString("45000.00")},
				{ProductID: "P002", Name: "Mouse", UnitPrice: decimal.RequireFromString("500.00"), Quantity: 2, Total: decimal.RequireFromString("1000.00")},
			},
			TotalAmount:   decimal.RequireFromString("46000.00"),
			PaymentAmount: decimal.RequireFromString("50000.00"),
			ChangeDue:     decimal.RequireFromString("4000.00"),
		},
		{
			ID:            "TXN_20250601_150000_bbbb2222",
			CustomerName:  "Asha",
			CreatedAt:     at.Add(90 * time.Minute),
			Lines:         []billing.CartLine{{ProductID: "P005", Name: "Pen", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 3, Total: decimal.RequireFromString("30.00")}},
			TotalAmount:   decimal.RequireFromString("30.00"),
			PaymentAmount: decimal.RequireFromString("30.00"),
			ChangeDue:     decimal.Zero,
		},
	}
	require.NoError(t, st.Sales().Save(ctx, in))

	out, err := st.Sales().Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, in[0].ID, out[0].ID, "append order preserved")
	assert.Equal(t, in[1].ID, out[1].ID)
	assert.True(t, out[0].CreatedAt.Equal(at))
	assert.True(t, out[0].TotalAmount.Equal(in[0].TotalAmount))
	assert.True(t, out[0].ChangeDue.Equal(in[0].ChangeDue))

	require.Len(t, out[0].Lines, 2)
	assert.Equal(t, inventory.ProductID("P001"), out[0].Lines[0].ProductID, "line order preserved")
	assert.Equal(t, inventory.ProductID("P002"), out[0].Lines[1].ProductID)
	assert.Equal(t, 2, out[0].Lines[1].Quantity)
	assert.True(t, out[0].Lines[1].Total.Equal(decimal.RequireFromString("1000.00")))
}

func TestSales_ReopenDatabaseKeepsHistory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shop.db")
	ctx := context.Background()

	st, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, st.Sales().Save(ctx, []billing.Transaction{{
		ID:            "TXN_20250601_143000_aaaa1111",
		CustomerName:  billing.WalkInCustomer,
		CreatedAt:     time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
		TotalAmount:   decimal.NewFromInt(100),
		PaymentAmount: decimal.NewFromInt(100),
		ChangeDue:     decimal.Zero,
	}}))
	require.NoError(t, st.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	history, err := reopened.Sales().Load(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, billing.TransactionID("TXN_20250601_143000_aaaa1111"), history[0].ID)
}

// =============================================================================
// ALERT LOG
// =============================================================================

func TestAlerts_AppendAcceptsRepeatedWrites(t *testing.T) {
	// The alert table is write-only from the domain's point of view; the
	// contract here is that appends keep succeeding on the same product.

	st := newTestStore(t)
	ctx := context.Background()

	for quantity := 3; quantity >= 0; quantity-- {
		require.NoError(t, st.Alerts().Append(ctx, inventory.LowStockAlert{
			At:        time.Now(),
			ProductID: "P005",
			Name:      "Pen",
			Quantity:  quantity,
			Threshold: 10,
		}))
	}
}
