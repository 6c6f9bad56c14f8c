package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caderno-api/internal/application/report"
)

// ReportHandler descargas CSV y PDF.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// CSV devuelve un handler que exporta la colección table.
// GET /api/reports/{products,sales,debts}.csv
func (h *ReportHandler) CSV(table string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := h.uc.ExportCSV(&buf, table); err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, table))
		return c.Send(buf.Bytes())
	}
}

// DailyPDF godoc
// @Summary      Cierre del día en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/daily.pdf [get]
func (h *ReportHandler) DailyPDF(c *fiber.Ctx) error {
	b, filename, err := h.uc.DailyPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(b)
}
