package usecase

import (
	"context"

	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

// WarehouseTypeUseCase expone los tipos de bodega creados por el setup.
// Es de solo lectura: las altas ocurren en el pipeline de aprovisionamiento.
type WarehouseTypeUseCase struct {
	repo repository.WarehouseTypeRepository
}

// NewWarehouseTypeUseCase construye el caso de uso.
func NewWarehouseTypeUseCase(repo repository.WarehouseTypeRepository) *WarehouseTypeUseCase {
	return &WarehouseTypeUseCase{repo: repo}
}

// List lista los tipos de bodega del sitio.
func (uc *WarehouseTypeUseCase) List(ctx context.Context) ([]dto.WarehouseTypeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseTypeResponse, 0, len(list))
	for _, wt := range list {
		items = append(items, dto.WarehouseTypeResponse{
			Name:      wt.Name,
			CreatedAt: wt.CreatedAt,
		})
	}
	return items, nil
}
