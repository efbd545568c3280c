package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Provisor-api/internal/application/dto"
)

// provisionRunner es el contrato mínimo de las dos operaciones de
// aprovisionamiento. Lo implementan *provisioning.SetupCompanyService y
// *provisioning.CreateUserService; el uso de interfaz evita el import circular
// y permite probar el handler con stubs.
type provisionRunner interface {
	ExecuteEncoded(ctx context.Context, configB64 string) dto.ProvisionResult
}

// statusProvider lo implementa *provisioning.StatusService.
type statusProvider interface {
	Status(ctx context.Context) (dto.ProvisionStatus, error)
}

// ProvisionHandler expone el aprovisionamiento del tenant al controlador SaaS.
// Las dos operaciones responden siempre 200 con ProvisionResult: el éxito o
// fracaso viaja en el campo success, nunca en el status HTTP (contrato con el
// orquestador, que reintenta según el cuerpo).
type ProvisionHandler struct {
	setup  provisionRunner
	users  provisionRunner
	status statusProvider
}

// NewProvisionHandler construye el handler de aprovisionamiento.
func NewProvisionHandler(setup, users provisionRunner, status statusProvider) *ProvisionHandler {
	return &ProvisionHandler{setup: setup, users: users, status: status}
}

// SetupCompany godoc
// @Summary      Setup inicial del tenant (empresa, año fiscal, defaults)
// @Tags         provision
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProvisionRequest  true  "config_b64: JSON del setup en base64"
// @Success      200   {object}  dto.ProvisionResult
// @Router       /api/provision/setup-company [post]
func (h *ProvisionHandler) SetupCompany(c *fiber.Ctx) error {
	var in dto.ProvisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.JSON(dto.ProvisionResult{Success: false, Message: "cuerpo inválido: se espera {\"config_b64\": \"...\"}"})
	}
	return c.JSON(h.setup.ExecuteEncoded(c.Context(), in.ConfigB64))
}

// CreateUser godoc
// @Summary      Crear o actualizar el usuario inicial del tenant
// @Tags         provision
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProvisionRequest  true  "config_b64: JSON del usuario en base64"
// @Success      200   {object}  dto.ProvisionResult
// @Router       /api/provision/create-user [post]
func (h *ProvisionHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.ProvisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.JSON(dto.ProvisionResult{Success: false, Message: "cuerpo inválido: se espera {\"config_b64\": \"...\"}"})
	}
	return c.JSON(h.users.ExecuteEncoded(c.Context(), in.ConfigB64))
}

// Status godoc
// @Summary      Estado de aprovisionamiento del sitio
// @Tags         provision
// @Produce      json
// @Success      200  {object}  dto.ProvisionStatus
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/provision/status [get]
func (h *ProvisionHandler) Status(c *fiber.Ctx) error {
	out, err := h.status.Status(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
