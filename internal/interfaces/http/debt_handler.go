package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
)

// DebtHandler maneja las peticiones HTTP de deudas (fiado).
type DebtHandler struct {
	uc *ledger.LedgerUseCase
}

// NewDebtHandler construye el handler.
func NewDebtHandler(uc *ledger.LedgerUseCase) *DebtHandler {
	return &DebtHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar deuda manual
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDebtRequest  true  "Deuda"
// @Success      201   {object}  dto.DebtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/debts [post]
func (h *DebtHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddDebt(c.Context(), in)
	return respond(c, fiber.StatusCreated, out, err)
}

// List godoc
// @Summary      Listar deudas
// @Tags         debts
// @Produce      json
// @Param        status  query  string  false  "pending o paid"
// @Success      200     {object}  dto.DebtListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/debts [get]
func (h *DebtHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListDebts(c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Settle marca la deuda como pagada. Repetirlo no cambia nada.
// POST /api/debts/:id/settle
func (h *DebtHandler) Settle(c *fiber.Ctx) error {
	out, err := h.uc.SettleDebt(c.Context(), c.Params("id"))
	return respond(c, fiber.StatusOK, out, err)
}
