/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  An embedded-database alternative to the flat-file backend, selected
  at the entrypoint. One Store owns the connection; Catalog(), Sales(),
  and Alerts() hand out views implementing the domain interfaces.

REWRITE GRANULARITY:
  The domain persists whole collections, so Save replaces the full
  table contents inside a single database transaction. That keeps the
  flat-file semantics (all-or-nothing replacement) while the database
  provides the atomicity the JSON backend gets from rename.

KEY TABLES:
  products:   Current catalog
  sales:      Completed transactions (append order preserved)
  sale_items: Line items per transaction
  alerts:     Append-only low-stock alert log

MONEY:
  Decimal amounts are stored as TEXT and parsed on load - no float
  round-trips.

USAGE:
  st, err := sqlite.New("./data/shop.db")
  if err != nil { ... }
  defer st.Close()
  catalog := inventory.NewCatalog(ctx, st.Catalog())

SEE ALSO:
  - inventory/store.go, billing/sales.go: Interface contracts
  - store/jsonfile: Flat-file backend
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
)

// Store owns the database connection and hands out interface views.
type Store struct {
	db *sql.DB
}

// New opens (and if needed creates) the database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// The domain is single-writer; one connection also keeps :memory:
	// databases coherent across calls.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		product_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		category TEXT NOT NULL,
		min_stock_threshold INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sales (
		transaction_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		customer_name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		payment_amount TEXT NOT NULL,
		change_due TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sales_position ON sales(position);

	CREATE TABLE IF NOT EXISTS sale_items (
		transaction_id TEXT NOT NULL REFERENCES sales(transaction_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		product_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		total TEXT NOT NULL,
		PRIMARY KEY (transaction_id, position)
	);

	-- Append-only: alerts are never updated or deleted
	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		product_id TEXT NOT NULL,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		threshold INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Catalog returns the inventory.CatalogStore view.
func (s *Store) Catalog() inventory.CatalogStore { return catalogStore{s} }

// Sales returns the billing.SalesStore view.
func (s *Store) Sales() billing.SalesStore { return salesStore{s} }

// Alerts returns the inventory.AlertLog view.
func (s *Store) Alerts() inventory.AlertLog { return alertLog{s} }

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return d, nil
}

// =============================================================================
// CATALOG STORE
// =============================================================================

type catalogStore struct {
	s *Store
}

func (c catalogStore) Load(ctx context.Context) ([]inventory.Product, error) {
	rows, err := c.s.db.QueryContext(ctx,
		`SELECT product_id, name, price, quantity, category, min_stock_threshold FROM products`)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	defer rows.Close()

	var products []inventory.Product
	for rows.Next() {
		var p inventory.Product
		var id, price string
		if err := rows.Scan(&id, &p.Name, &price, &p.Quantity, &p.Category, &p.MinStockThreshold); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.ID = inventory.ProductID(id)
		if p.Price, err = parseAmount(price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (c catalogStore) Save(ctx context.Context, products []inventory.Product) error {
	tx, err := c.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	for _, p := range products {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (product_id, name, price, quantity, category, min_stock_threshold)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			string(p.ID), p.Name, p.Price.String(), p.Quantity, p.Category, p.MinStockThreshold)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// =============================================================================
// SALES STORE
// =============================================================================

type salesStore struct {
	s *Store
}

func (ss salesStore) Load(ctx context.Context) ([]billing.Transaction, error) {
	rows, err := ss.s.db.QueryContext(ctx,
		`SELECT transaction_id, customer_name, created_at, total_amount, payment_amount, change_due
		 FROM sales ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	defer rows.Close()

	var history []billing.Transaction
	for rows.Next() {
		var tx billing.Transaction
		var id, createdAt, total, payment, change string
		if err := rows.Scan(&id, &tx.CustomerName, &createdAt, &total, &payment, &change); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		tx.ID = billing.TransactionID(id)
		if tx.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse sale timestamp: %w", err)
		}
		if tx.TotalAmount, err = parseAmount(total); err != nil {
			return nil, err
		}
		if tx.PaymentAmount, err = parseAmount(payment); err != nil {
			return nil, err
		}
		if tx.ChangeDue, err = parseAmount(change); err != nil {
			return nil, err
		}
		history = append(history, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range history {
		lines, err := ss.loadItems(ctx, history[i].ID)
		if err != nil {
			return nil, err
		}
		history[i].Lines = lines
	}
	return history, nil
}

func (ss salesStore) loadItems(ctx context.Context, id billing.TransactionID) ([]billing.CartLine, error) {
	rows, err := ss.s.db.QueryContext(ctx,
		`SELECT product_id, name, price, quantity, total FROM sale_items
		 WHERE transaction_id = ? ORDER BY position`, string(id))
	if err != nil {
		return nil, fmt.Errorf("load items for %s: %w", id, err)
	}
	defer rows.Close()

	var lines []billing.CartLine
	for rows.Next() {
		var line billing.CartLine
		var productID, price, total string
		if err := rows.Scan(&productID, &line.Name, &price, &line.Quantity, &total); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		line.ProductID = inventory.ProductID(productID)
		if line.UnitPrice, err = parseAmount(price); err != nil {
			return nil, err
		}
		if line.Total, err = parseAmount(total); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (ss salesStore) Save(ctx context.Context, history []billing.Transaction) error {
	tx, err := ss.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sales save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sale_items`); err != nil {
		return fmt.Errorf("clear sale items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sales`); err != nil {
		return fmt.Errorf("clear sales: %w", err)
	}

	for pos, sale := range history {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sales (transaction_id, position, customer_name, created_at, total_amount, payment_amount, change_due)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(sale.ID), pos, sale.CustomerName,
			sale.CreatedAt.Format(time.RFC3339Nano),
			sale.TotalAmount.String(), sale.PaymentAmount.String(), sale.ChangeDue.String())
		if err != nil {
			return fmt.Errorf("insert sale %s: %w", sale.ID, err)
		}
		for i, line := range sale.Lines {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO sale_items (transaction_id, position, product_id, name, price, quantity, total)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				string(sale.ID), i, string(line.ProductID), line.Name,
				line.UnitPrice.String(), line.Quantity, line.Total.String())
			if err != nil {
				return fmt.Errorf("insert item for %s: %w", sale.ID, err)
			}
		}
	}
	return tx.Commit()
}

// =============================================================================
// ALERT LOG
// =============================================================================

type alertLog struct {
	s *Store
}

func (a alertLog) Append(ctx context.Context, alert inventory.LowStockAlert) error {
	_, err := a.s.db.ExecContext(ctx,
		`INSERT INTO alerts (created_at, product_id, name, quantity, threshold)
		 VALUES (?, ?, ?, ?, ?)`,
		alert.At.Format(time.RFC3339Nano), string(alert.ProductID),
		alert.Name, alert.Quantity, alert.Threshold)
	if err != nil {
		return fmt.Errorf("append alert: %w", err)
	}
	return nil
}
