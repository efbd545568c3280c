package repository

import (
	"context"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Supplier, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
	// Count cuenta proveedores excluyendo excludeID si no es vacío.
	Count(ctx context.Context, excludeID string) (int, error)
}
