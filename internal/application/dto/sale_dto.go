package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest entrada para registrar una venta.
// PaymentMethod: cash, debt o transfer. CustomerName es obligatorio en la práctica para debt.
type RecordSaleRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
	CustomerName  string `json:"customer_name,omitempty"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Profit        decimal.Decimal `json:"profit"`
	PaymentMethod string          `json:"payment_method"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Date          time.Time       `json:"date"`
}

// RecordSaleResponse venta registrada más la deuda generada (solo en ventas a crédito).
type RecordSaleResponse struct {
	Sale SaleResponse  `json:"sale"`
	Debt *DebtResponse `json:"debt,omitempty"`
}

// SaleListResponse lista de ventas, de la más reciente a la más antigua.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}
