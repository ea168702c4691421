/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shop engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Open the selected store backend (json files or sqlite)
  3. Construct the core: catalog, stock ledger, cart, sales ledger
  4. Seed demo products when the catalog is empty
  5. Report low-stock products
  6. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS (env fallback in parentheses):
  -port   HTTP server port (PORT, default 8080)
  -store  Backend: "json" or "sqlite" (STORE_BACKEND, default json)
  -data   Data directory for the json backend (DATA_DIR, default ./data)
  -db     Database path for the sqlite backend (DB_PATH, default ./data/shop.db)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait for active
  requests (30s timeout), close the store, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - store/jsonfile, store/sqlite: Backends
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jainstore/pos-engine/api"
	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
	"github.com/jainstore/pos-engine/store/jsonfile"
	"github.com/jainstore/pos-engine/store/sqlite"
)

func main() {
	// .env is optional; flags override env values.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	backend := flag.String("store", envStr("STORE_BACKEND", "json"), `store backend: "json" or "sqlite"`)
	dataDir := flag.String("data", envStr("DATA_DIR", "./data"), "data directory for the json backend")
	dbPath := flag.String("db", envStr("DB_PATH", "./data/shop.db"), "database path for the sqlite backend")
	flag.Parse()

	ctx := context.Background()

	var (
		catalogStore inventory.CatalogStore
		salesStore   billing.SalesStore
		alertLog     inventory.AlertLog
		closeStore   func() error = func() error { return nil }
	)

	switch *backend {
	case "json":
		if err := os.MkdirAll(*dataDir, 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		catalogStore = jsonfile.NewCatalog(filepath.Join(*dataDir, jsonfile.CatalogFile))
		salesStore = jsonfile.NewSales(filepath.Join(*dataDir, jsonfile.SalesFile))
		alertLog = jsonfile.NewAlerts(filepath.Join(*dataDir, jsonfile.AlertsFile))
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
			log.Fatalf("Failed to create database directory: %v", err)
		}
		st, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		catalogStore = st.Catalog()
		salesStore = st.Sales()
		alertLog = st.Alerts()
		closeStore = st.Close
	default:
		log.Fatalf("Unknown store backend %q (use json or sqlite)", *backend)
	}
	defer closeStore()

	// Core wiring: catalog -> stock ledger -> cart + sales ledger.
	catalog := inventory.NewCatalog(ctx, catalogStore)
	stock := inventory.NewStockLedger(catalog, alertLog)
	cart := billing.NewCart(catalog)
	sales := billing.NewSalesLedger(ctx, salesStore, stock)

	if catalog.Len() == 0 {
		if err := seedDemoProducts(ctx, catalog); err != nil {
			log.Printf("Warning: failed to seed demo products: %v", err)
		} else {
			log.Printf("Seeded %d demo products", catalog.Len())
		}
	} else {
		log.Printf("Catalog loaded: %d products, %d recorded sales", catalog.Len(), len(sales.History()))
	}

	if low := catalog.LowStock(); len(low) > 0 {
		log.Printf("ATTENTION: %d product(s) have low stock", len(low))
		for _, p := range low {
			log.Printf("  - %s (ID: %s): %d units", p.Name, p.ID, p.Quantity)
		}
	}

	handler := api.NewHandler(catalog, stock, cart, sales)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
