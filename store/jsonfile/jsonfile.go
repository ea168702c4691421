/*
Package jsonfile provides flat-file JSON implementations of the storage
interfaces.

PURPOSE:
  Persists the catalog and the sales history as JSON files, and the
  low-stock alerts as an append-only plain-text log. This is the
  primary backend; file formats match the persisted record layouts:

    inventory.json:
      [{product_id, name, price, quantity, category, min_stock_threshold}]
    sales.json:
      [{transaction_id, customer_name, timestamp, items, total_amount,
        payment_amount, change}]
    low_stock_alerts.txt:
      timestamped plain-text alert blocks, append-only

ATOMIC WRITES:
  Saves go through a temporary file in the same directory followed by
  an atomic rename. A crash mid-write leaves the previous file intact;
  there is no torn-file state.

LOAD SEMANTICS:
  A missing file loads as an empty collection without error. A corrupt
  file returns a parse error - the domain layer treats load failures
  leniently and starts empty.

NUMBERS:
  Prices and amounts serialize as bare JSON numbers (decimal-backed,
  not floats), so files interoperate with the historical format.

SEE ALSO:
  - inventory/store.go, billing/sales.go: Interface contracts
  - store/sqlite: Embedded-database backend
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
)

// Default file names inside a data directory.
const (
	CatalogFile = "inventory.json"
	SalesFile   = "sales.json"
	AlertsFile  = "low_stock_alerts.txt"
)

// jsonNumber marshals a decimal as a bare JSON number. Unmarshaling is
// inherited from decimal.Decimal, which accepts quoted and unquoted.
type jsonNumber struct {
	decimal.Decimal
}

func (n jsonNumber) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

// writeAtomic writes data to path via a temp file + rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// =============================================================================
// CATALOG STORE
// =============================================================================

type productRecord struct {
	ProductID         string     `json:"product_id"`
	Name              string     `json:"name"`
	Price             jsonNumber `json:"price"`
	Quantity          int        `json:"quantity"`
	Category          string     `json:"category"`
	MinStockThreshold int        `json:"min_stock_threshold"`
}

// Catalog implements inventory.CatalogStore over a single JSON file.
type Catalog struct {
	path string
}

// NewCatalog creates a catalog store writing to the given file path.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

func (c *Catalog) Load(_ context.Context) ([]inventory.Product, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}

	products := make([]inventory.Product, len(records))
	for i, r := range records {
		threshold := r.MinStockThreshold
		if threshold == 0 {
			threshold = inventory.DefaultStockThreshold
		}
		products[i] = inventory.Product{
			ID:                inventory.ProductID(r.ProductID),
			Name:              r.Name,
			Price:             r.Price.Decimal,
			Quantity:          r.Quantity,
			Category:          r.Category,
			MinStockThreshold: threshold,
		}
	}
	return products, nil
}

func (c *Catalog) Save(_ context.Context, products []inventory.Product) error {
	records := make([]productRecord, len(products))
	for i, p := range products {
		records[i] = productRecord{
			ProductID:         string(p.ID),
			Name:              p.Name,
			Price:             jsonNumber{p.Price},
			Quantity:          p.Quantity,
			Category:          p.Category,
			MinStockThreshold: p.MinStockThreshold,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return writeAtomic(c.path, data)
}

// =============================================================================
// SALES STORE
// =============================================================================

type itemRecord struct {
	ProductID string     `json:"product_id"`
	Name      string     `json:"name"`
	Price     jsonNumber `json:"price"`
	Quantity  int        `json:"quantity"`
	Total     jsonNumber `json:"total"`
}

type transactionRecord struct {
	TransactionID string       `json:"transaction_id"`
	CustomerName  string       `json:"customer_name"`
	Timestamp     time.Time    `json:"timestamp"`
	Items         []itemRecord `json:"items"`
	TotalAmount   jsonNumber   `json:"total_amount"`
	PaymentAmount jsonNumber   `json:"payment_amount"`
	Change        jsonNumber   `json:"change"`
}

// Sales implements billing.SalesStore over a single JSON file.
// History order is preserved.
type Sales struct {
	path string
}

// NewSales creates a sales store writing to the given file path.
func NewSales(path string) *Sales {
	return &Sales{path: path}
}

func (s *Sales) Load(_ context.Context) ([]billing.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var records []transactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	history := make([]billing.Transaction, len(records))
	for i, r := range records {
		lines := make([]billing.CartLine, len(r.Items))
		for j, item := range r.Items {
			lines[j] = billing.CartLine{
				ProductID: inventory.ProductID(item.ProductID),
				Name:      item.Name,
				UnitPrice: item.Price.Decimal,
				Quantity:  item.Quantity,
				Total:     item.Total.Decimal,
			}
		}
		history[i] = billing.Transaction{
			ID:            billing.TransactionID(r.TransactionID),
			CustomerName:  r.CustomerName,
			CreatedAt:     r.Timestamp,
			Lines:         lines,
			TotalAmount:   r.TotalAmount.Decimal,
			PaymentAmount: r.PaymentAmount.Decimal,
			ChangeDue:     r.Change.Decimal,
		}
	}
	return history, nil
}

func (s *Sales) Save(_ context.Context, history []billing.Transaction) error {
	records := make([]transactionRecord, len(history))
	for i, tx := range history {
		items := make([]itemRecord, len(tx.Lines))
		for j, line := range tx.Lines {
			items[j] = itemRecord{
				ProductID: string(line.ProductID),
				Name:      line.Name,
				Price:     jsonNumber{line.UnitPrice},
				Quantity:  line.Quantity,
				Total:     jsonNumber{line.Total},
			}
		}
		records[i] = transactionRecord{
			TransactionID: string(tx.ID),
			CustomerName:  tx.CustomerName,
			Timestamp:     tx.CreatedAt,
			Items:         items,
			TotalAmount:   jsonNumber{tx.TotalAmount},
			PaymentAmount: jsonNumber{tx.PaymentAmount},
			Change:        jsonNumber{tx.ChangeDue},
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sales history: %w", err)
	}
	return writeAtomic(s.path, data)
}

// =============================================================================
// ALERT LOG
// =============================================================================

// Alerts implements inventory.AlertLog as an append-only text file.
type Alerts struct {
	path string
}

// NewAlerts creates an alert log appending to the given file path.
func NewAlerts(path string) *Alerts {
	return &Alerts{path: path}
}

func (a *Alerts) Append(_ context.Context, alert inventory.LowStockAlert) error {
	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", a.path, err)
	}
	defer f.Close()

	block := fmt.Sprintf("\n%s\n*** LOW STOCK ALERT ***\nProduct: %s (ID: %s)\nCurrent Stock: %d\nMinimum Threshold: %d\nPlease restock this item immediately!\n%s\n",
		alert.At.Format("2006-01-02 15:04:05"),
		alert.Name, alert.ProductID,
		alert.Quantity, alert.Threshold,
		"==================================================")

	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("append to %s: %w", a.path, err)
	}
	return nil
}
