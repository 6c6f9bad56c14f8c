// Package csvio lee y escribe colecciones del ledger en CSV (gocsv).
// Los montos se escriben como texto decimal exacto, nunca como float.
package csvio

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/jhoicas/Caderno-api/internal/application/report"
	"github.com/jhoicas/Caderno-api/internal/domain/entity"
)

var _ report.TableExporter = (*Exporter)(nil)

type productRow struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Category string `csv:"category"`
	Cost     string `csv:"cost"`
	Price    string `csv:"price"`
	Stock    int    `csv:"stock"`
}

type saleRow struct {
	ID            string `csv:"id"`
	Date          string `csv:"date"`
	ProductID     string `csv:"product_id"`
	ProductName   string `csv:"product_name"`
	Quantity      int    `csv:"quantity"`
	Total         string `csv:"total"`
	Profit        string `csv:"profit"`
	PaymentMethod string `csv:"payment_method"`
	CustomerName  string `csv:"customer_name"`
}

type debtRow struct {
	ID           string `csv:"id"`
	Date         string `csv:"date"`
	CustomerName string `csv:"customer_name"`
	Amount       string `csv:"amount"`
	Description  string `csv:"description"`
	Status       string `csv:"status"`
}

// Exporter escribe CSV con encabezado. Fechas en RFC 3339 en la zona horaria dada.
type Exporter struct {
	loc *time.Location
}

// NewExporter construye el exportador. loc nil usa time.Local.
func NewExporter(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.Local
	}
	return &Exporter{loc: loc}
}

// WriteProducts una fila por producto.
func (e *Exporter) WriteProducts(w io.Writer, products []entity.Product) error {
	rows := make([]*productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &productRow{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Cost:     p.Cost.String(),
			Price:    p.Price.String(),
			Stock:    p.Stock,
		})
	}
	return marshal(rows, w)
}

// WriteSales una fila por venta, en el orden recibido.
func (e *Exporter) WriteSales(w io.Writer, sales []entity.Sale) error {
	rows := make([]*saleRow, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, &saleRow{
			ID:            s.ID,
			Date:          s.Date.In(e.loc).Format(time.RFC3339),
			ProductID:     s.ProductID,
			ProductName:   s.ProductName,
			Quantity:      s.Quantity,
			Total:         s.Total.String(),
			Profit:        s.Profit.String(),
			PaymentMethod: string(s.PaymentMethod),
			CustomerName:  s.CustomerName,
		})
	}
	return marshal(rows, w)
}

// WriteDebts una fila por deuda.
func (e *Exporter) WriteDebts(w io.Writer, debts []entity.Debt) error {
	rows := make([]*debtRow, 0, len(debts))
	for _, d := range debts {
		rows = append(rows, &debtRow{
			ID:           d.ID,
			Date:         d.Date.In(e.loc).Format(time.RFC3339),
			CustomerName: d.CustomerName,
			Amount:       d.Amount.String(),
			Description:  d.Description,
			Status:       string(d.Status),
		})
	}
	return marshal(rows, w)
}

func marshal[T any](rows []*T, w io.Writer) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	return nil
}
