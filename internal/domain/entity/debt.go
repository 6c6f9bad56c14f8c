package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus estado de una deuda.
type DebtStatus string

const (
	DebtPending DebtStatus = "pending"
	DebtPaid    DebtStatus = "paid"
)

// Valid indica si el estado es uno de los admitidos.
func (s DebtStatus) Valid() bool {
	return s == DebtPending || s == DebtPaid
}

// Debt saldo a crédito de un cliente. Status es el único campo mutable (pending → paid).
type Debt struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	Status       DebtStatus      `json:"status"`
}

// IsPending indica si la deuda sigue abierta.
func (d Debt) IsPending() bool {
	return d.Status == DebtPending
}
