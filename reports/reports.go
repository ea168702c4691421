/*
Package reports provides read-side projections over sales history and
the catalog.

PURPOSE:
  Pure aggregation for dashboards: revenue by day, top-selling
  products, and catalog value by category. Nothing here mutates state
  or touches storage - callers pass in the collections they already
  hold and get derived views back.

SEE ALSO:
  - billing/sales.go: SalesLedger.History, the usual input
  - api/handlers.go: Dashboard endpoints built on these
*/
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
)

// =============================================================================
// REVENUE BY DAY
// =============================================================================

// DailyRevenue aggregates one calendar day of sales.
type DailyRevenue struct {
	Day          string // YYYY-MM-DD
	Transactions int
	Revenue      decimal.Decimal
}

// RevenueByDay groups transactions by calendar day, sorted ascending.
func RevenueByDay(history []billing.Transaction) []DailyRevenue {
	byDay := make(map[string]*DailyRevenue)
	for _, tx := range history {
		day := tx.CreatedAt.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &DailyRevenue{Day: day, Revenue: decimal.Zero}
			byDay[day] = d
		}
		d.Transactions++
		d.Revenue = d.Revenue.Add(tx.TotalAmount)
	}

	out := make([]DailyRevenue, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// =============================================================================
// TOP PRODUCTS
// =============================================================================

// ProductSales aggregates all sold lines of one product.
type ProductSales struct {
	ProductID    inventory.ProductID
	Name         string
	QuantitySold int
	Revenue      decimal.Decimal
}

// TopProducts returns products ranked by quantity sold (revenue as
// tiebreaker), at most limit entries. A non-positive limit returns all.
func TopProducts(history []billing.Transaction, limit int) []ProductSales {
	byProduct := make(map[inventory.ProductID]*ProductSales)
	for _, tx := range history {
		for _, line := range tx.Lines {
			p, ok := byProduct[line.ProductID]
			if !ok {
				p = &ProductSales{ProductID: line.ProductID, Name: line.Name, Revenue: decimal.Zero}
				byProduct[line.ProductID] = p
			}
			p.QuantitySold += line.Quantity
			p.Revenue = p.Revenue.Add(line.Total)
		}
	}

	out := make([]ProductSales, 0, len(byProduct))
	for _, p := range byProduct {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// =============================================================================
// CATALOG VALUE BY CATEGORY
// =============================================================================

// CategoryStock aggregates one category's slice of the catalog.
type CategoryStock struct {
	Category   string
	Products   int
	Units      int
	StockValue decimal.Decimal // sum of price * quantity
}

// ByCategory groups products by category, sorted by stock value
// descending.
func ByCategory(products []inventory.Product) []CategoryStock {
	byCat := make(map[string]*CategoryStock)
	for _, p := range products {
		c, ok := byCat[p.Category]
		if !ok {
			c = &CategoryStock{Category: p.Category, StockValue: decimal.Zero}
			byCat[p.Category] = c
		}
		c.Products++
		c.Units += p.Quantity
		c.StockValue = c.StockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}

	out := make([]CategoryStock, 0, len(byCat))
	for _, c := range byCat {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StockValue.Equal(out[j].StockValue) {
			return out[i].StockValue.GreaterThan(out[j].StockValue)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
