package entity

import "github.com/shopspring/decimal"

// DefaultCategory se asigna cuando el producto se crea sin categoría.
const DefaultCategory = "General"

// LowStockThreshold: por debajo de este stock el producto se considera en stock bajo.
const LowStockThreshold = 5

// Product representa un artículo vendible del catálogo.
// Stock solo cambia al registrar ventas y puede quedar negativo (sobreventa permitida).
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`  // costo unitario de adquisición
	Price    decimal.Decimal `json:"price"` // precio unitario de venta
	Stock    int             `json:"stock"`
}

// IsLowStock indica si el stock está por debajo del umbral fijo.
func (p Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}
