package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod forma de pago de una venta.
type PaymentMethod string

// Formas de pago admitidas.
const (
	PaymentCash     PaymentMethod = "cash"
	PaymentDebt     PaymentMethod = "debt" // fiado: genera una deuda pendiente
	PaymentTransfer PaymentMethod = "transfer"
)

// Valid indica si la forma de pago es una de las admitidas.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentDebt, PaymentTransfer:
		return true
	}
	return false
}

// Sale registro inmutable de una venta. ProductName, Total y Profit son una copia
// tomada al momento de la venta; no cambian si el producto se edita o se elimina.
type Sale struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Profit        decimal.Decimal `json:"profit"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CustomerName  string          `json:"customerName,omitempty"`
	Date          time.Time       `json:"date"`
}
