package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Provisor-api/internal/application/provisioning"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

// Ensure TxRunner implements provisioning.TxRunner.
var _ provisioning.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSetup inicia una transacción, ejecuta fn con los repos de aprovisionamiento
// atados a la tx y hace Commit o Rollback. Cada paso del setup corre en su
// propia transacción; al fallar un paso solo se revierte ese paso.
func (r *TxRunner) RunSetup(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	fiscalYearRepo repository.FiscalYearRepository,
	warehouseTypeRepo repository.WarehouseTypeRepository,
	settingsRepo repository.SettingsRepository,
	appRepo repository.InstalledAppRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	companyRepo := NewCompanyRepository(tx)
	fiscalYearRepo := NewFiscalYearRepository(tx)
	warehouseTypeRepo := NewWarehouseTypeRepository(tx)
	settingsRepo := NewSettingsRepository(tx)
	appRepo := NewInstalledAppRepository(tx)

	if err := fn(companyRepo, fiscalYearRepo, warehouseTypeRepo, settingsRepo, appRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunUsers inicia una transacción con el repo de usuarios, de modo que el alta
// de usuario y la asignación de roles queden atómicas.
func (r *TxRunner) RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)

	if err := fn(userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
