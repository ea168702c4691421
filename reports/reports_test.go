package reports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
	"github.com/jainstore/pos-engine/reports"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func tx(day string, total float64, lines ...billing.CartLine) billing.Transaction {
	at, err := time.Parse("2006-01-02 15:04", day)
	if err != nil {
		panic(err)
	}
	return billing.Transaction{
		ID:          billing.NewTransactionID(at),
		CreatedAt:   at,
		Lines:       lines,
		TotalAmount: decimal.NewFromFloat(total),
	}
}

func line(id, name string, price float64, quantity int) billing.CartLine {
	unit := decimal.NewFromFloat(price)
	return billing.CartLine{
		ProductID: inventory.ProductID(id),
		Name:      name,
		UnitPrice: unit,
		Quantity:  quantity,
		Total:     unit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// =============================================================================
// REVENUE BY DAY
// =============================================================================

func TestRevenueByDay_GroupsAndSortsAscending(t *testing.T) {
	history := []billing.Transaction{
		tx("2025-06-02 10:00", 200),
		tx("2025-06-01 09:00", 100),
		tx("2025-06-01 17:30", 50),
	}

	days := reports.RevenueByDay(history)

	require.Len(t, days, 2)
	assert.Equal(t, "2025-06-01", days[0].Day)
	assert.Equal(t, 2, days[0].Transactions)
	assert.True(t, days[0].Revenue.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "2025-06-02", days[1].Day)
	assert.True(t, days[1].Revenue.Equal(decimal.NewFromInt(200)))
}

func TestRevenueByDay_EmptyHistory(t *testing.T) {
	assert.Empty(t, reports.RevenueByDay(nil))
}

// =============================================================================
// TOP PRODUCTS
// =============================================================================

func TestTopProducts_RanksByQuantityThenRevenue(t *testing.T) {
	history := []billing.Transaction{
		tx("2025-06-01 09:00", 0,
			line("P005", "Pen", 10, 4),
			line("P001", "Laptop", 45000, 1)),
		tx("2025-06-01 12:00", 0,
			line("P005", "Pen", 10, 2),
			line("P002", "Mouse", 500, 6)),
	}

	top := reports.TopProducts(history, 0)

	require.Len(t, top, 3)
	// Pen and Mouse both sold 6 units; Mouse wins on revenue.
	assert.Equal(t, inventory.ProductID("P002"), top[0].ProductID)
	assert.Equal(t, 6, top[0].QuantitySold)
	assert.True(t, top[0].Revenue.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, inventory.ProductID("P005"), top[1].ProductID)
	assert.True(t, top[1].Revenue.Equal(decimal.NewFromInt(60)), "quantities merged across transactions")
	assert.Equal(t, inventory.ProductID("P001"), top[2].ProductID)
}

func TestTopProducts_LimitTruncates(t *testing.T) {
	history := []billing.Transaction{
		tx("2025-06-01 09:00", 0,
			line("P001", "Laptop", 45000, 3),
			line("P002", "Mouse", 500, 2),
			line("P005", "Pen", 10, 1)),
	}

	top := reports.TopProducts(history, 2)

	require.Len(t, top, 2)
	assert.Equal(t, inventory.ProductID("P001"), top[0].ProductID)
	assert.Equal(t, inventory.ProductID("P002"), top[1].ProductID)
}

// =============================================================================
// CATALOG VALUE BY CATEGORY
// =============================================================================

func TestByCategory_AggregatesStockValue(t *testing.T) {
	products := []inventory.Product{
		{ID: "P001", Name: "Laptop", Price: decimal.NewFromInt(45000), Quantity: 2, Category: "Electronics"},
		{ID: "P002", Name: "Mouse", Price: decimal.NewFromInt(500), Quantity: 10, Category: "Electronics"},
		{ID: "P004", Name: "Notebook", Price: decimal.NewFromInt(50), Quantity: 25, Category: "Stationery"},
	}

	cats := reports.ByCategory(products)

	require.Len(t, cats, 2)
	assert.Equal(t, "Electronics", cats[0].Category, "highest stock value first")
	assert.Equal(t, 2, cats[0].Products)
	assert.Equal(t, 12, cats[0].Units)
	assert.True(t, cats[0].StockValue.Equal(decimal.NewFromInt(95000)))
	assert.Equal(t, "Stationery", cats[1].Category)
	assert.True(t, cats[1].StockValue.Equal(decimal.NewFromInt(1250)))
}
