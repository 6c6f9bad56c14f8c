package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	uc *ledger.LedgerUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *ledger.LedgerUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock (puede quedar negativo). Con payment_method=debt y cliente, crea la deuda.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Venta"
// @Success      201   {object}  dto.RecordSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordSale(c.Context(), in)
	return respond(c, fiber.StatusCreated, out, err)
}

// List godoc
// @Summary      Listar ventas (más reciente primero)
// @Tags         sales
// @Produce      json
// @Param        limit  query  int  false  "Máximo de ventas; 0 = todas"
// @Success      200    {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	return c.JSON(h.uc.ListSales(limit))
}
