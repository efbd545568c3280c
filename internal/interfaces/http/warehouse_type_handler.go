package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/application/usecase"
)

// WarehouseTypeHandler expone los tipos de bodega creados por el setup.
// Sirve para que el controlador SaaS verifique el aprovisionamiento.
type WarehouseTypeHandler struct {
	uc *usecase.WarehouseTypeUseCase
}

// NewWarehouseTypeHandler construye el handler.
func NewWarehouseTypeHandler(uc *usecase.WarehouseTypeUseCase) *WarehouseTypeHandler {
	return &WarehouseTypeHandler{uc: uc}
}

// List godoc
// @Summary      Listar tipos de bodega
// @Tags         warehouse-types
// @Produce      json
// @Success      200  {array}  dto.WarehouseTypeResponse
// @Router       /api/warehouse-types [get]
func (h *WarehouseTypeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
