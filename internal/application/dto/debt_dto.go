package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDebtRequest entrada para registrar una deuda manual (fiado).
type CreateDebtRequest struct {
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
}

// DebtResponse salida de una deuda.
type DebtResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	Status       string          `json:"status"`
}

// DebtListResponse lista de deudas, de la más reciente a la más antigua.
type DebtListResponse struct {
	Items        []DebtResponse  `json:"items"`
	Total        int             `json:"total"`
	PendingTotal decimal.Decimal `json:"pending_total"`
}
