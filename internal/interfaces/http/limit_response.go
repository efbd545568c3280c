package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/domain"
)

// limitReached mapea una violación de cuota del plan a 403 LIMIT_REACHED.
// Title y Message vienen del validador, listos para mostrar al usuario final.
func limitReached(c *fiber.Ctx, err error) error {
	var le *domain.LimitExceededError
	if !errors.As(err, &le) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Code:    "LIMIT_REACHED",
		Message: le.Message,
		Title:   le.Title,
	})
}
