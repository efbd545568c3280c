package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Provisor-api/internal/domain"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

var _ repository.WarehouseTypeRepository = (*WarehouseTypeRepo)(nil)

// WarehouseTypeRepo implementación del puerto WarehouseTypeRepository sobre PostgreSQL.
type WarehouseTypeRepo struct {
	q Querier
}

// NewWarehouseTypeRepository construye el adaptador.
func NewWarehouseTypeRepository(q Querier) *WarehouseTypeRepo {
	return &WarehouseTypeRepo{q: q}
}

// Exists indica si el tipo de almacén ya está registrado.
func (r *WarehouseTypeRepo) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM warehouse_types WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check warehouse type: %w", err)
	}
	return exists, nil
}

// Create registra un tipo de almacén.
func (r *WarehouseTypeRepo) Create(ctx context.Context, wt *entity.WarehouseType) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouse_types (name, created_at) VALUES ($1, $2)`,
		wt.Name, wt.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse type: %w", err)
	}
	return nil
}

// List devuelve los tipos de almacén ordenados por nombre.
func (r *WarehouseTypeRepo) List(ctx context.Context) ([]*entity.WarehouseType, error) {
	rows, err := r.q.Query(ctx, `
		SELECT name, created_at FROM warehouse_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list warehouse types: %w", err)
	}
	defer rows.Close()

	var list []*entity.WarehouseType
	for rows.Next() {
		var wt entity.WarehouseType
		if err := rows.Scan(&wt.Name, &wt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse type: %w", err)
		}
		list = append(list, &wt)
	}
	return list, rows.Err()
}
