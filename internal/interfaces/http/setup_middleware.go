package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Provisor-api/internal/application/dto"
)

// setupChecker es el contrato mínimo que necesita el middleware para saber si
// el sitio ya fue aprovisionado. Lo implementa *provisioning.StatusService;
// el uso de interfaz evita el import circular.
type setupChecker interface {
	SetupComplete(ctx context.Context) (bool, error)
}

// RequireSetupComplete devuelve un middleware Fiber que bloquea las rutas de
// negocio hasta que el setup del tenant haya terminado.
//
// Comportamiento:
//   - 403 Forbidden → el sitio existe pero aún no corre setup_company.
//   - 503 Service Unavailable → fallo de infraestructura al consultar el estado.
func RequireSetupComplete(checker setupChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		done, err := checker.SetupComplete(c.Context())
		if err != nil {
			// Fallo de infraestructura: no confundirlo con un sitio sin
			// aprovisionar, el cliente puede reintentar.
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SETUP_CHECK_FAILED",
				Message: "no se pudo verificar el estado del sitio, intente más tarde",
			})
		}

		if !done {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SETUP_INCOMPLETE",
				Message: "el sitio aún no completa el aprovisionamiento",
			})
		}

		return c.Next()
	}
}
