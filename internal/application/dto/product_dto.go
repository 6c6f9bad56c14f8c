package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

// UpdateProductRequest entrada para editar un producto (sin Stock: solo cambia vía ventas).
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Cost     *decimal.Decimal `json:"cost"`
	Price    *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	LowStock bool            `json:"low_stock"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ImportProductsResponse resultado de una importación CSV.
type ImportProductsResponse struct {
	Imported int               `json:"imported"`
	Items    []ProductResponse `json:"items"`
}
