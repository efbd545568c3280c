package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Provisor-api/internal/domain"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, abbr, country, currency, chart_of_accounts, perpetual_inventory, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Abbr, company.Country,
		company.Currency, company.ChartOfAccounts, company.PerpetualInventory,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT id, name, abbr, country, currency, chart_of_accounts, perpetual_inventory, created_at, updated_at
		FROM companies WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByName obtiene una empresa por nombre (clave natural del setup).
func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	query := `
		SELECT id, name, abbr, country, currency, chart_of_accounts, perpetual_inventory, created_at, updated_at
		FROM companies WHERE name = $1`
	return r.scanOne(ctx, query, name)
}

// List devuelve empresas con paginación.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT id, name, abbr, country, currency, chart_of_accounts, perpetual_inventory, created_at, updated_at
		FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Abbr, &c.Country, &c.Currency,
			&c.ChartOfAccounts, &c.PerpetualInventory, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Count cuenta empresas, excluyendo excludeID si no es vacío.
func (r *CompanyRepo) Count(ctx context.Context, excludeID string) (int, error) {
	var count int
	var err error
	if excludeID == "" {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	} else {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM companies WHERE id <> $1`, excludeID).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return count, nil
}

func (r *CompanyRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Abbr, &c.Country, &c.Currency,
		&c.ChartOfAccounts, &c.PerpetualInventory, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
