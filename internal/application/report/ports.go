package report

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caderno-api/internal/domain/entity"
	domledger "github.com/jhoicas/Caderno-api/internal/domain/ledger"
)

// SnapshotSource fuente de lectura del ledger.
type SnapshotSource interface {
	Snapshot() domledger.Snapshot
}

// DailyReport datos del cierre del día, listos para renderizar.
type DailyReport struct {
	BusinessName string
	DateLabel    string // YYYY-MM-DD en la zona horaria configurada
	GeneratedAt  time.Time

	Sales        []entity.Sale // ventas del día, de la más reciente a la más antigua
	Revenue      decimal.Decimal
	Profit       decimal.Decimal
	PendingTotal decimal.Decimal
	PendingDebts []entity.Debt
	LowStock     []entity.Product
}

// DailyPDFGenerator puerto de salida para el PDF del cierre diario (infra: Maroto).
type DailyPDFGenerator interface {
	GenerateDailyPDF(ctx context.Context, r *DailyReport) ([]byte, error)
}

// TableExporter puerto de salida para exportar colecciones en CSV.
type TableExporter interface {
	WriteProducts(w io.Writer, products []entity.Product) error
	WriteSales(w io.Writer, sales []entity.Sale) error
	WriteDebts(w io.Writer, debts []entity.Debt) error
}
