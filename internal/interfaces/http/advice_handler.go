package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caderno-api/internal/application/advice"
	"github.com/jhoicas/Caderno-api/internal/application/dto"
)

// AdviceHandler maneja los endpoints del consultor de IA.
type AdviceHandler struct {
	uc *advice.AdviceUseCase
}

// NewAdviceHandler construye el handler.
func NewAdviceHandler(uc *advice.AdviceUseCase) *AdviceHandler {
	return &AdviceHandler{uc: uc}
}

// Request godoc
// @Summary      Pedir consejos al consultor IA
// @Description  Asíncrono: responde 202 con la tarea; consultar GET /api/advice hasta state=done.
// @Description  Solo una consulta a la vez.
// @Tags         advice
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdviceRequest  false  "business_name opcional"
// @Success      202   {object}  dto.AdviceTaskDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/advice [post]
func (h *AdviceHandler) Request(c *fiber.Ctx) error {
	var in dto.AdviceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	task, err := h.uc.Request(in.BusinessName)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(task.DTO())
}

// Status godoc
// @Summary      Estado de la última consulta de consejos
// @Tags         advice
// @Produce      json
// @Success      200  {object}  dto.AdviceTaskDTO
// @Router       /api/advice [get]
func (h *AdviceHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.uc.Status())
}
