package repository

import (
	"context"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// FiscalYearRepository define el puerto de persistencia para FiscalYear.
type FiscalYearRepository interface {
	Create(ctx context.Context, fy *entity.FiscalYear) error
	GetByYear(ctx context.Context, year string) (*entity.FiscalYear, error)
	List(ctx context.Context) ([]*entity.FiscalYear, error)
}
