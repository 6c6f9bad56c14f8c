package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	BusinessName string `json:"business_name"`

	// Métricas del día actual (zona horaria configurada)
	TodaySales   decimal.Decimal `json:"today_sales"`  // ingresos brutos de hoy
	TodayProfit  decimal.Decimal `json:"today_profit"` // ganancia de hoy
	TodayCount   int             `json:"today_count"`  // ventas registradas hoy
	PendingDebts decimal.Decimal `json:"pending_debts"`
	LowStock     int             `json:"low_stock"` // productos con stock < 5

	Categories  []string       `json:"categories"`
	RecentSales []SaleResponse `json:"recent_sales"` // últimas 5

	DateLabel string `json:"date_label"` // ej: "2026-10-19"
}
