package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Provisor-api/internal/domain"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, tax_id, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		supplier.ID, supplier.Name, supplier.TaxID, supplier.Email, supplier.Phone,
		supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.scanOne(ctx, `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM suppliers WHERE id = $1`, id)
}

// GetByTaxID obtiene un proveedor por NIT. nil si no existe.
func (r *SupplierRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Supplier, error) {
	return r.scanOne(ctx, `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM suppliers WHERE tax_id = $1`, taxID)
}

// List devuelve proveedores con paginación.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM suppliers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count cuenta proveedores, excluyendo excludeID si no es vacío.
func (r *SupplierRepo) Count(ctx context.Context, excludeID string) (int, error) {
	var count int
	var err error
	if excludeID == "" {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`).Scan(&count)
	} else {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers WHERE id <> $1`, excludeID).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count suppliers: %w", err)
	}
	return count, nil
}

func (r *SupplierRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}
