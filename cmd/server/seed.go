// seed.go - Demo catalog for first runs.
// Some products deliberately sit below the stock threshold so the
// low-stock alerting is visible immediately.
package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jainstore/pos-engine/inventory"
)

type demoProduct struct {
	id       string
	name     string
	price    string
	quantity int
	category string
}

var demoProducts = []demoProduct{
	{"P001", "Laptop", "45000.00", 15, "Electronics"},
	{"P002", "Mouse", "500.00", 8, "Electronics"},
	{"P003", "Keyboard", "1200.00", 5, "Electronics"},
	{"P004", "Notebook", "50.00", 25, "Stationery"},
	{"P005", "Pen", "10.00", 3, "Stationery"},
	{"P006", "Coffee Mug", "200.00", 12, "Kitchen"},
	{"P007", "Water Bottle", "300.00", 7, "Kitchen"},
	{"P008", "T-Shirt", "500.00", 20, "Clothing"},
	{"P009", "Jeans", "1500.00", 4, "Clothing"},
	{"P010", "Shoes", "2500.00", 6, "Clothing"},
}

func seedDemoProducts(ctx context.Context, catalog *inventory.Catalog) error {
	for _, d := range demoProducts {
		price, err := decimal.NewFromString(d.price)
		if err != nil {
			return fmt.Errorf("bad demo price for %s: %w", d.id, err)
		}
		if _, err := catalog.Add(ctx, inventory.ProductID(d.id), d.name, price, d.quantity, d.category); err != nil {
			return fmt.Errorf("seed %s: %w", d.id, err)
		}
	}
	return nil
}
