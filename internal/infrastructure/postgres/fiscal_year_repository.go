package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Provisor-api/internal/domain"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

var _ repository.FiscalYearRepository = (*FiscalYearRepo)(nil)

// FiscalYearRepo implementación del puerto FiscalYearRepository sobre PostgreSQL.
type FiscalYearRepo struct {
	q Querier
}

// NewFiscalYearRepository construye el adaptador.
func NewFiscalYearRepository(q Querier) *FiscalYearRepo {
	return &FiscalYearRepo{q: q}
}

// Create persiste un nuevo año fiscal.
func (r *FiscalYearRepo) Create(ctx context.Context, fy *entity.FiscalYear) error {
	query := `
		INSERT INTO fiscal_years (id, year, start_date, end_date, is_short_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		fy.ID, fy.Year, fy.StartDate, fy.EndDate, fy.IsShortYear,
		fy.CreatedAt, fy.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fiscal year: %w", err)
	}
	return nil
}

// GetByYear obtiene un año fiscal por nombre (ej. "2025-2026"). nil si no existe.
func (r *FiscalYearRepo) GetByYear(ctx context.Context, year string) (*entity.FiscalYear, error) {
	var fy entity.FiscalYear
	err := r.q.QueryRow(ctx, `
		SELECT id, year, start_date, end_date, is_short_year, created_at, updated_at
		FROM fiscal_years WHERE year = $1`, year).Scan(
		&fy.ID, &fy.Year, &fy.StartDate, &fy.EndDate, &fy.IsShortYear,
		&fy.CreatedAt, &fy.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal year: %w", err)
	}
	return &fy, nil
}

// List devuelve todos los años fiscales ordenados por fecha de inicio.
func (r *FiscalYearRepo) List(ctx context.Context) ([]*entity.FiscalYear, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, year, start_date, end_date, is_short_year, created_at, updated_at
		FROM fiscal_years ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list fiscal years: %w", err)
	}
	defer rows.Close()

	var list []*entity.FiscalYear
	for rows.Next() {
		var fy entity.FiscalYear
		if err := rows.Scan(
			&fy.ID, &fy.Year, &fy.StartDate, &fy.EndDate, &fy.IsShortYear,
			&fy.CreatedAt, &fy.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fiscal year: %w", err)
		}
		list = append(list, &fy)
	}
	return list, rows.Err()
}
