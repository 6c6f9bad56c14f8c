// Package report arma los reportes descargables del ledger: CSV por colección y PDF del día.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/Caderno-api/internal/domain"
	domledger "github.com/jhoicas/Caderno-api/internal/domain/ledger"
)

// Colecciones exportables en CSV.
const (
	TableProducts = "products"
	TableSales    = "sales"
	TableDebts    = "debts"
)

// ReportUseCase genera reportes sobre una copia consistente del ledger.
type ReportUseCase struct {
	source       SnapshotSource
	pdf          DailyPDFGenerator
	exporter     TableExporter
	businessName string
	loc          *time.Location
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso. loc nil usa time.Local.
func NewReportUseCase(source SnapshotSource, pdf DailyPDFGenerator, exporter TableExporter, businessName string, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReportUseCase{
		source:       source,
		pdf:          pdf,
		exporter:     exporter,
		businessName: businessName,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// BuildDailyReport calcula el cierre del día actual.
func (uc *ReportUseCase) BuildDailyReport() *DailyReport {
	snap := uc.source.Snapshot()
	now := uc.now().In(uc.loc)

	today := domledger.RecentSales(domledger.TodaysSales(snap.Sales, now), 0)
	r := &DailyReport{
		BusinessName: uc.businessName,
		DateLabel:    now.Format("2006-01-02"),
		GeneratedAt:  now,
		Sales:        today,
		Revenue:      domledger.Revenue(today),
		Profit:       domledger.Profit(today),
		PendingTotal: domledger.PendingDebtTotal(snap.Debts),
		PendingDebts: domledger.PendingDebts(snap.Debts),
	}
	for _, p := range snap.Products {
		if p.IsLowStock() {
			r.LowStock = append(r.LowStock, p)
		}
	}
	return r
}

// DailyPDF genera el PDF del cierre del día. Devuelve bytes y nombre de archivo sugerido.
func (uc *ReportUseCase) DailyPDF(ctx context.Context) ([]byte, string, error) {
	r := uc.BuildDailyReport()
	b, err := uc.pdf.GenerateDailyPDF(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("reporte diario: %w", err)
	}
	return b, fmt.Sprintf("caderno-%s.pdf", r.DateLabel), nil
}

// ExportCSV escribe la colección table en w. Tabla desconocida → domain.ErrNotFound.
func (uc *ReportUseCase) ExportCSV(w io.Writer, table string) error {
	snap := uc.source.Snapshot()
	var err error
	switch table {
	case TableProducts:
		err = uc.exporter.WriteProducts(w, snap.Products)
	case TableSales:
		err = uc.exporter.WriteSales(w, domledger.RecentSales(snap.Sales, 0))
	case TableDebts:
		err = uc.exporter.WriteDebts(w, snap.Debts)
	default:
		return fmt.Errorf("%w: reporte %q", domain.ErrNotFound, table)
	}
	if err != nil {
		return fmt.Errorf("exportar %s: %w", table, err)
	}
	return nil
}
