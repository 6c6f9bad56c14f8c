package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
)

// RequireConfirmation exige ?confirm=true en operaciones destructivas (borrar producto).
// Sin confirmación responde 400 CONFIRMATION_REQUIRED y no llama al handler.
func RequireConfirmation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !c.QueryBool("confirm", false) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "CONFIRMATION_REQUIRED",
				Message: "operación destructiva: repetir con ?confirm=true",
			})
		}
		return c.Next()
	}
}

// RequestLogger registra método, ruta, status y duración de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		ev := log.Info()
		if status := c.Response().StatusCode(); status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}
