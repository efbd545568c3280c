package repository

import (
	"context"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	// Count cuenta clientes excluyendo excludeID si no es vacío.
	Count(ctx context.Context, excludeID string) (int, error)
}
