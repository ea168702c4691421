/*
handlers.go - HTTP API handlers for the shop engine

PURPOSE:
  Exposes the inventory and billing core via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.
  This layer (plus the router) is the whole presentation surface; it
  never touches persisted files directly.

ENDPOINTS:
  Products:
    GET    /api/products               List all products
    POST   /api/products               Add product
    GET    /api/products/search?q=     Search by id/name/category
    GET    /api/products/low-stock     Products at or below threshold
    GET    /api/products/{id}          Get product
    PUT    /api/products/{id}          Partial update
    DELETE /api/products/{id}          Remove product
    POST   /api/products/{id}/stock    Adjust stock by delta

  Cart (one active checkout session):
    GET    /api/cart                   View cart
    DELETE /api/cart                   Clear cart
    POST   /api/cart/items             Add item
    DELETE /api/cart/items/{id}        Remove item (?quantity= partial)

  Sales:
    POST   /api/checkout               Complete the sale
    GET    /api/sales                  List transactions
    GET    /api/sales/summary          Summary (?from=&to=, RFC3339)
    GET    /api/sales/{id}/receipt     Text receipt

  Reports:
    GET    /api/reports/daily          Revenue by day
    GET    /api/reports/top-products   Top sellers (?limit=)
    GET    /api/reports/categories     Catalog value by category

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, payment shortfall
  - 404: Product or transaction not found
  - 409: Duplicate product, stock shortage or conflict
  - 500: Persistence or internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
	"github.com/jainstore/pos-engine/reports"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog *inventory.Catalog
	Stock   *inventory.StockLedger
	Cart    *billing.Cart
	Sales   *billing.SalesLedger
}

// NewHandler creates a handler over an already-constructed core.
func NewHandler(catalog *inventory.Catalog, stock *inventory.StockLedger, cart *billing.Cart, sales *billing.SalesLedger) *Handler {
	return &Handler{Catalog: catalog, Stock: stock, Cart: cart, Sales: sales}
}

// =============================================================================
// PRODUCT HANDLERS
// =============================================================================

// ListProducts returns the full catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProductDTOs(h.Catalog.List()))
}

// GetProduct returns a single product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := inventory.ProductID(chi.URLParam(r, "id"))
	p, ok := h.Catalog.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Price < 0 || req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "Price and quantity must be non-negative", nil)
		return
	}

	p, err := h.Catalog.Add(r.Context(),
		inventory.ProductID(req.ID), req.Name,
		decimal.NewFromFloat(req.Price), req.Quantity, req.Category)
	if err != nil {
		writeDomainError(w, "Failed to add product", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(p))
}

// UpdateProduct applies a partial update.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := inventory.ProductID(chi.URLParam(r, "id"))

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch := inventory.ProductPatch{
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
	}
	if req.Price != nil {
		if *req.Price < 0 {
			writeError(w, http.StatusBadRequest, "Price must be non-negative", nil)
			return
		}
		price := decimal.NewFromFloat(*req.Price)
		patch.Price = &price
	}

	p, err := h.Catalog.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, "Failed to update product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := inventory.ProductID(chi.URLParam(r, "id"))
	if err := h.Catalog.Remove(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to remove product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchProducts searches by id, name, or category.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "Missing query parameter q", nil)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(h.Catalog.Search(q)))
}

// ListLowStock returns products at or below their threshold.
func (h *Handler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProductDTOs(h.Catalog.LowStock()))
}

// AdjustStock restocks or writes off stock.
func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id := inventory.ProductID(chi.URLParam(r, "id"))

	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Delta == 0 {
		writeError(w, http.StatusBadRequest, "Delta must be non-zero", nil)
		return
	}

	p, err := h.Stock.Adjust(r.Context(), id, req.Delta)
	if err != nil {
		writeDomainError(w, "Failed to adjust stock", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

// =============================================================================
// CART HANDLERS
// =============================================================================

// GetCart returns the active cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartDTO(h.Cart))
}

// ClearCart empties the active cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.Cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// AddCartItem adds (or merges) a line in the active cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "Quantity must be positive", nil)
		return
	}

	if _, err := h.Cart.AddItem(inventory.ProductID(req.ProductID), req.Quantity); err != nil {
		writeDomainError(w, "Failed to add to cart", err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(h.Cart))
}

// RemoveCartItem removes a line, or part of it when ?quantity= is set.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id := inventory.ProductID(chi.URLParam(r, "id"))

	var err error
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		quantity, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "Invalid quantity", parseErr)
			return
		}
		err = h.Cart.ReduceItem(id, quantity)
	} else {
		err = h.Cart.RemoveItem(id)
	}
	if err != nil {
		writeDomainError(w, "Failed to remove from cart", err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(h.Cart))
}

// =============================================================================
// SALES HANDLERS
// =============================================================================

// Checkout completes the sale for the active cart.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.PaymentAmount < 0 {
		writeError(w, http.StatusBadRequest, "Payment must be non-negative", nil)
		return
	}

	tx, err := h.Sales.Checkout(r.Context(), h.Cart,
		decimal.NewFromFloat(req.PaymentAmount), req.CustomerName)
	if err != nil {
		writeDomainError(w, "Checkout failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

// ListSales returns the full transaction history.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toTransactionDTOs(h.Sales.History()))
}

// SalesSummary aggregates sales over an optional RFC3339 time range.
func (h *Handler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from (use RFC3339)", err)
			return
		}
		from = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to (use RFC3339)", err)
			return
		}
		to = &t
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(h.Sales.Summary(from, to)))
}

// GetReceipt renders the text receipt for a recorded transaction.
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id := billing.TransactionID(chi.URLParam(r, "id"))
	tx, ok := h.Sales.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Transaction not found", nil)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(billing.FormatReceipt(tx)))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// DailyRevenue returns revenue grouped by calendar day.
func (h *Handler) DailyRevenue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toDailyRevenueDTOs(reports.RevenueByDay(h.Sales.History())))
}

// TopProducts returns the best sellers.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, toProductSalesDTOs(reports.TopProducts(h.Sales.History(), limit)))
}

// CategoryBreakdown returns catalog stock value grouped by category.
func (h *Handler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCategoryStockDTOs(reports.ByCategory(h.Catalog.List())))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Error = msg + ": " + err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, billing.ErrItemNotInCart):
		status = http.StatusNotFound
	case errors.Is(err, inventory.ErrDuplicateProduct),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, billing.ErrStockConflict):
		status = http.StatusConflict
	case billing.IsClientError(err):
		status = http.StatusBadRequest
	}
	writeError(w, status, msg, err)
}
