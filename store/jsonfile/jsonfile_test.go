package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
	"github.com/jainstore/pos-engine/store/jsonfile"
)

// =============================================================================
// CATALOG
// =============================================================================

func TestCatalog_MissingFileLoadsEmpty(t *testing.T) {
	store := jsonfile.NewCatalog(filepath.Join(t.TempDir(), jsonfile.CatalogFile))

	products, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalog_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), jsonfile.CatalogFile)
	store := jsonfile.NewCatalog(path)
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
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].ID, out[0].ID)
	assert.Equal(t, in[0].Name, out[0].Name)
	assert.True(t, out[0].Price.Equal(in[0].Price))
	assert.Equal(t, 15, out[0].Quantity)
	assert.Equal(t, 5, out[1].MinStockThreshold, "explicit threshold survives")
}

func TestCatalog_PricesAreBareNumbers(t *testing.T) {
	// The file keeps the historical field names and unquoted numeric
	// prices so existing data files load as-is.

	path := filepath.Join(t.TempDir(), jsonfile.CatalogFile)
	store := jsonfile.NewCatalog(path)

	require.NoError(t, store.Save(context.Background(), []inventory.Product{{
		ID:                "P001",
		Name:              "Laptop",
		Price:             decimal.RequireFromString("45000.5"),
		Quantity:          1,
		Category:          "Electronics",
		MinStockThreshold: 10,
	}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, `"product_id": "P001"`)
	assert.Contains(t, content, `"min_stock_threshold": 10`)
	assert.Contains(t, content, `"price": 45000.5`)
	assert.NotContains(t, content, `"price": "45000.5"`, "price must not be quoted")
}

func TestCatalog_ZeroThresholdDefaultsOnLoad(t *testing.T) {
	// Files written before thresholds existed carry no
	// min_stock_threshold; those load with the default.

	path := filepath.Join(t.TempDir(), jsonfile.CatalogFile)
	legacy := `[{"product_id": "P001", "name": "Laptop", "price": 45000, "quantity": 15, "category": "Electronics"}]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	products, err := jsonfile.NewCatalog(path).Load(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, inventory.DefaultStockThreshold, products[0].MinStockThreshold)
}

func TestCatalog_CorruptFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), jsonfile.CatalogFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := jsonfile.NewCatalog(path).Load(context.Background())

	assert.Error(t, err)
}

// =============================================================================
// SALES
// =============================================================================

func TestSales_SaveThenLoadPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), jsonfile.SalesFile)
	store := jsonfile.NewSales(path)
	ctx := context.Background()

	at := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	in := []billing.Transaction{
		{
			ID:           "TXN_20250601_143000_aaaa1111",
			CustomerName: billing.WalkInCustomer,
			CreatedAt:    at,
			Lines: []billing.CartLine{{
				ProductID: "P001",
				Name:      "Laptop",
				UnitPrice: decimal.RequireFromString("45000.00"),
				Quantity:  1,
				Total:     decimal.RequireFromString("45000.00"),
			}},
			TotalAmount:   decimal.RequireFromString("45000.00"),
			PaymentAmount: decimal.RequireFromString("50000.00"),
			ChangeDue:     decimal.RequireFromString("5000.00"),
		},
		{
			ID:           "TXN_20250601_150000_bbbb2222",
			CustomerName: "Asha",
			CreatedAt:    at.Add(90 * time.Minute),
			Lines: []billing.CartLine{{
				ProductID: "P005",
				Name:      "Pen",
				UnitPrice: decimal.RequireFromString("10.00"),
				Quantity:  3,
				Total:     decimal.RequireFromString("30.00"),
			}},
			TotalAmount:   decimal.RequireFromString("30.00"),
			PaymentAmount: decimal.RequireFromString("30.00"),
			ChangeDue:     decimal.Zero,
		},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].ID, out[0].ID)
	assert.Equal(t, in[1].ID, out[1].ID)
	assert.True(t, out[0].CreatedAt.Equal(at))
	assert.True(t, out[0].ChangeDue.Equal(in[0].ChangeDue))
	require.Len(t, out[1].Lines, 1)
	assert.Equal(t, 3, out[1].Lines[0].Quantity)
	assert.True(t, out[1].Lines[0].Total.Equal(in[1].Lines[0].Total))
}

func TestSales_MissingFileLoadsEmpty(t *testing.T) {
	store := jsonfile.NewSales(filepath.Join(t.TempDir(), jsonfile.SalesFile))

	history, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSales_FieldNamesMatchHistoricalFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), jsonfile.SalesFile)
	store := jsonfile.NewSales(path)

	require.NoError(t, store.Save(context.Background(), []billing.Transaction{{
		ID:            "TXN_20250601_143000_aaaa1111",
		CustomerName:  billing.WalkInCustomer,
		CreatedAt:     time.Now(),
		TotalAmount:   decimal.NewFromInt(100),
		PaymentAmount: decimal.NewFromInt(100),
		ChangeDue:     decimal.Zero,
	}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	for _, field := range []string{
		`"transaction_id"`, `"customer_name"`, `"timestamp"`,
		`"items"`, `"total_amount"`, `"payment_amount"`, `"change"`,
	} {
		assert.Contains(t, content, field)
	}
}

// =============================================================================
// ALERT LOG
// =============================================================================

func TestAlerts_AppendWritesReadableBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), jsonfile.AlertsFile)
	log := jsonfile.NewAlerts(path)
	ctx := context.Background()

	at := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	require.NoError(t, log.Append(ctx, inventory.LowStockAlert{
		At:        at,
		ProductID: "P005",
		Name:      "Pen",
		Quantity:  3,
		Threshold: 10,
	}))
	require.NoError(t, log.Append(ctx, inventory.LowStockAlert{
		At:        at.Add(time.Hour),
		ProductID: "P002",
		Name:      "Mouse",
		Quantity:  8,
		Threshold: 10,
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	assert.Equal(t, 2, strings.Count(content, "*** LOW STOCK ALERT ***"), "append-only: both alerts kept")
	assert.Contains(t, content, "2025-06-01 14:30:00")
	assert.Contains(t, content, "Product: Pen (ID: P005)")
	assert.Contains(t, content, "Current Stock: 3")
	assert.Contains(t, content, "Minimum Threshold: 10")
}
