package repository

import (
	"context"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	// Count cuenta empresas excluyendo excludeID si no es vacío (regla
	// excluir-a-sí-mismo al validar updates contra el límite del plan).
	Count(ctx context.Context, excludeID string) (int, error)
}
