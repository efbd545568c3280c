package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/application/limits"
)

// LimitsHandler expone la sincronización y consulta de cuotas del plan. Ambas
// rutas son públicas: las invoca el controlador SaaS directamente, sin sesión
// en el tenant, y no revelan más que los números del plan.
type LimitsHandler struct {
	store *limits.Store
}

// NewLimitsHandler construye el handler de límites.
func NewLimitsHandler(store *limits.Store) *LimitsHandler {
	return &LimitsHandler{store: store}
}

// Sync godoc
// @Summary      Sincronizar las cuotas del plan del tenant
// @Description  La invoca el controlador SaaS al asignar o cambiar el plan. Campos ausentes quedan en 0 (ilimitado). Acepta JSON y form-encoding.
// @Tags         limits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncLimitsRequest  true  "cuotas del plan"
// @Success      200   {object}  dto.SyncLimitsResponse
// @Router       /api/limits/sync [post]
func (h *LimitsHandler) Sync(c *fiber.Ctx) error {
	var in dto.SyncLimitsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.JSON(dto.SyncLimitsError{Success: false, Error: "cuerpo inválido: " + err.Error()})
	}
	planLimits := in.ToLimits()
	if err := h.store.Set(c.Context(), planLimits); err != nil {
		return c.JSON(dto.SyncLimitsError{Success: false, Error: err.Error()})
	}
	return c.JSON(dto.SyncLimitsResponse{
		Success: true,
		Message: "Plan limits updated",
		Limits:  planLimits,
	})
}

// Current godoc
// @Summary      Cuotas vigentes del tenant
// @Tags         limits
// @Produce      json
// @Success      200  {object}  dto.CurrentLimitsResponse
// @Router       /api/limits/current [get]
func (h *LimitsHandler) Current(c *fiber.Ctx) error {
	planLimits, err := h.store.Get(c.Context())
	if err != nil {
		return c.JSON(dto.SyncLimitsError{Success: false, Error: err.Error()})
	}
	return c.JSON(dto.CurrentLimitsResponse{Success: true, Limits: planLimits})
}
