package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Provisor-api/internal/application/dto"
)

// HeaderProvisionKey header con la llave del orquestador de aprovisionamiento.
const HeaderProvisionKey = "X-Provision-Key"

// RequireProvisionKey protege las rutas /api/provision/* con una llave
// compartida. Sin llave configurada las rutas quedan deshabilitadas (403
// siempre): nunca se expone el aprovisionamiento por un descuido de config.
// La comparación es en tiempo constante.
func RequireProvisionKey(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PROVISION_DISABLED",
				Message: "el aprovisionamiento no está habilitado en este sitio",
			})
		}
		got := c.Get(HeaderProvisionKey)
		if subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_PROVISION_KEY",
				Message: "llave de aprovisionamiento inválida",
			})
		}
		return c.Next()
	}
}
