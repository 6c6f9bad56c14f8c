package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Caderno-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del día.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (today_sales, today_profit, pending_debts, low_stock,
// categories, recent_sales[5], date_label).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetSummary())
}
