// Package analytics contiene los casos de uso de consultas derivadas del ledger
// (resumen del día para el Dashboard).
package analytics

import (
	"time"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
	domledger "github.com/jhoicas/Caderno-api/internal/domain/ledger"
)

const dashboardRecentSales = 5 // ventas recientes en el widget del dashboard

// SnapshotSource fuente de lectura del ledger.
type SnapshotSource interface {
	Snapshot() domledger.Snapshot
}

// DashboardUseCase genera el resumen del día. Solo lectura: se recalcula en cada llamada.
type DashboardUseCase struct {
	source       SnapshotSource
	businessName string
	loc          *time.Location
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc nil usa time.Local.
func NewDashboardUseCase(source SnapshotSource, businessName string, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{source: source, businessName: businessName, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO sobre una copia consistente del ledger.
func (uc *DashboardUseCase) GetSummary() *dto.DashboardSummaryDTO {
	snap := uc.source.Snapshot()
	now := uc.now().In(uc.loc)

	today := domledger.TodaysSales(snap.Sales, now)
	recent := domledger.RecentSales(snap.Sales, dashboardRecentSales)
	recentDTO := make([]dto.SaleResponse, 0, len(recent))
	for _, s := range recent {
		recentDTO = append(recentDTO, ledger.ToSaleResponse(s))
	}

	return &dto.DashboardSummaryDTO{
		BusinessName: uc.businessName,
		TodaySales:   domledger.Revenue(today),
		TodayProfit:  domledger.Profit(today),
		TodayCount:   len(today),
		PendingDebts: domledger.PendingDebtTotal(snap.Debts),
		LowStock:     domledger.LowStockCount(snap.Products),
		Categories:   domledger.DistinctCategories(snap.Products),
		RecentSales:  recentDTO,
		DateLabel:    now.Format("2006-01-02"),
	}
}
