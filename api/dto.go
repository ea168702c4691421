/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model
  from the external contract. Decimal amounts cross the wire as JSON
  numbers (float64 in the DTOs); the domain keeps full decimal
  precision internally.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/jainstore/pos-engine/billing"
	"github.com/jainstore/pos-engine/inventory"
	"github.com/jainstore/pos-engine/reports"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ProductDTO represents a product in API responses.
type ProductDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Quantity          int     `json:"quantity"`
	Category          string  `json:"category"`
	MinStockThreshold int     `json:"min_stock_threshold"`
	LowStock          bool    `json:"low_stock"`
}

// CreateProductRequest is the request to add a product.
type CreateProductRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category,omitempty"`
}

// UpdateProductRequest is the partial-update request; nil fields are
// left untouched.
type UpdateProductRequest struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Category *string  `json:"category,omitempty"`
}

// AdjustStockRequest is the request to restock (positive delta) or
// write off (negative delta) a product.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// CartLineDTO represents one cart or transaction line.
type CartLineDTO struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// CartDTO represents the active cart.
type CartDTO struct {
	Lines []CartLineDTO `json:"lines"`
	Total float64       `json:"total"`
}

// AddCartItemRequest is the request to add an item to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is the request to complete the sale.
type CheckoutRequest struct {
	PaymentAmount float64 `json:"payment_amount"`
	CustomerName  string  `json:"customer_name,omitempty"`
}

// TransactionDTO represents a recorded sale.
type TransactionDTO struct {
	ID            string        `json:"transaction_id"`
	CustomerName  string        `json:"customer_name"`
	Timestamp     string        `json:"timestamp"`
	Items         []CartLineDTO `json:"items"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentAmount float64       `json:"payment_amount"`
	Change        float64       `json:"change"`
}

// SummaryDTO is the sales summary over a time range. Average is
// omitted when there are no transactions.
type SummaryDTO struct {
	Transactions int      `json:"transactions"`
	TotalRevenue float64  `json:"total_revenue"`
	Average      *float64 `json:"average_transaction,omitempty"`
}

// DailyRevenueDTO is one row of the revenue-by-day report.
type DailyRevenueDTO struct {
	Day          string  `json:"day"`
	Transactions int     `json:"transactions"`
	Revenue      float64 `json:"revenue"`
}

// ProductSalesDTO is one row of the top-products report.
type ProductSalesDTO struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// CategoryStockDTO is one row of the category breakdown report.
type CategoryStockDTO struct {
	Category   string  `json:"category"`
	Products   int     `json:"products"`
	Units      int     `json:"units"`
	StockValue float64 `json:"stock_value"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toProductDTO(p inventory.Product) ProductDTO {
	price, _ := p.Price.Float64()
	return ProductDTO{
		ID:                string(p.ID),
		Name:              p.Name,
		Price:             price,
		Quantity:          p.Quantity,
		Category:          p.Category,
		MinStockThreshold: p.MinStockThreshold,
		LowStock:          p.LowOnStock(),
	}
}

func toProductDTOs(products []inventory.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	return dtos
}

func toCartLineDTO(l billing.CartLine) CartLineDTO {
	price, _ := l.UnitPrice.Float64()
	total, _ := l.Total.Float64()
	return CartLineDTO{
		ProductID: string(l.ProductID),
		Name:      l.Name,
		Price:     price,
		Quantity:  l.Quantity,
		Total:     total,
	}
}

func toCartDTO(cart *billing.Cart) CartDTO {
	lines := cart.Lines()
	dto := CartDTO{Lines: make([]CartLineDTO, len(lines))}
	for i, l := range lines {
		dto.Lines[i] = toCartLineDTO(l)
	}
	dto.Total, _ = cart.Total().Float64()
	return dto
}

func toTransactionDTO(tx billing.Transaction) TransactionDTO {
	items := make([]CartLineDTO, len(tx.Lines))
	for i, l := range tx.Lines {
		items[i] = toCartLineDTO(l)
	}
	total, _ := tx.TotalAmount.Float64()
	payment, _ := tx.PaymentAmount.Float64()
	change, _ := tx.ChangeDue.Float64()
	return TransactionDTO{
		ID:            string(tx.ID),
		CustomerName:  tx.CustomerName,
		Timestamp:     tx.CreatedAt.Format(time.RFC3339),
		Items:         items,
		TotalAmount:   total,
		PaymentAmount: payment,
		Change:        change,
	}
}

func toTransactionDTOs(txs []billing.Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}
	return dtos
}

func toSummaryDTO(s billing.SalesSummary) SummaryDTO {
	revenue, _ := s.Revenue.Float64()
	dto := SummaryDTO{Transactions: s.Transactions, TotalRevenue: revenue}
	if s.Transactions > 0 {
		avg, _ := s.Average.Float64()
		dto.Average = &avg
	}
	return dto
}

func toDailyRevenueDTOs(rows []reports.DailyRevenue) []DailyRevenueDTO {
	dtos := make([]DailyRevenueDTO, len(rows))
	for i, r := range rows {
		revenue, _ := r.Revenue.Float64()
		dtos[i] = DailyRevenueDTO{Day: r.Day, Transactions: r.Transactions, Revenue: revenue}
	}
	return dtos
}

func toProductSalesDTOs(rows []reports.ProductSales) []ProductSalesDTO {
	dtos := make([]ProductSalesDTO, len(rows))
	for i, r := range rows {
		revenue, _ := r.Revenue.Float64()
		dtos[i] = ProductSalesDTO{
			ProductID:    string(r.ProductID),
			Name:         r.Name,
			QuantitySold: r.QuantitySold,
			Revenue:      revenue,
		}
	}
	return dtos
}

func toCategoryStockDTOs(rows []reports.CategoryStock) []CategoryStockDTO {
	dtos := make([]CategoryStockDTO, len(rows))
	for i, r := range rows {
		value, _ := r.StockValue.Float64()
		dtos[i] = CategoryStockDTO{
			Category:   r.Category,
			Products:   r.Products,
			Units:      r.Units,
			StockValue: value,
		}
	}
	return dtos
}
