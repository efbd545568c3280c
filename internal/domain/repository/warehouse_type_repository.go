package repository

import (
	"context"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// WarehouseTypeRepository define el puerto de persistencia para WarehouseType.
type WarehouseTypeRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, wt *entity.WarehouseType) error
	List(ctx context.Context) ([]*entity.WarehouseType, error)
}
