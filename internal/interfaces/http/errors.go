package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/domain"
)

// HeaderLedgerWarning se envía cuando la operación se aplicó pero no se pudo persistir.
const HeaderLedgerWarning = "X-Ledger-Warning"

// writeError traduce errores de dominio a la respuesta HTTP estándar.
func writeError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrAdviceInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ADVICE_IN_FLIGHT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// invalidBody respuesta para JSON mal formado.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// respond escribe out con status. Un fallo de persistencia no es fatal: el cambio ya está
// aplicado en memoria, así que se responde éxito con el header de advertencia.
func respond(c *fiber.Ctx, status int, out any, err error) error {
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			return writeError(c, err)
		}
		c.Set(HeaderLedgerWarning, "cambio aplicado pero no guardado: "+err.Error())
	}
	if out == nil {
		return c.SendStatus(status)
	}
	return c.Status(status).JSON(out)
}
