package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Migration es un paso de esquema versionado.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// GetMigrations devuelve todas las migraciones del sitio en orden.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create provisioning tables",
			SQL: `
				CREATE TABLE IF NOT EXISTS companies (
					id VARCHAR(36) PRIMARY KEY,
					name VARCHAR(255) NOT NULL UNIQUE,
					abbr VARCHAR(10) NOT NULL,
					country VARCHAR(100) NOT NULL,
					currency VARCHAR(3) NOT NULL,
					chart_of_accounts VARCHAR(255) NOT NULL DEFAULT '',
					perpetual_inventory BOOLEAN NOT NULL DEFAULT TRUE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS users (
					id VARCHAR(36) PRIMARY KEY,
					email VARCHAR(255) NOT NULL UNIQUE,
					first_name VARCHAR(100) NOT NULL,
					last_name VARCHAR(100) NOT NULL DEFAULT '',
					password_hash VARCHAR(255) NOT NULL,
					enabled BOOLEAN NOT NULL DEFAULT TRUE,
					user_type VARCHAR(20) NOT NULL DEFAULT 'System User',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS user_roles (
					user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					role VARCHAR(100) NOT NULL,
					PRIMARY KEY (user_id, role)
				);

				CREATE TABLE IF NOT EXISTS customers (
					id VARCHAR(36) PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					tax_id VARCHAR(50) NOT NULL UNIQUE,
					email VARCHAR(255) NOT NULL DEFAULT '',
					phone VARCHAR(50) NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS suppliers (
					id VARCHAR(36) PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					tax_id VARCHAR(50) NOT NULL UNIQUE,
					email VARCHAR(255) NOT NULL DEFAULT '',
					phone VARCHAR(50) NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS invoices (
					id VARCHAR(36) PRIMARY KEY,
					customer_id VARCHAR(36) NOT NULL REFERENCES customers(id),
					posting_date DATE NOT NULL,
					docstatus SMALLINT NOT NULL DEFAULT 0,
					net_total NUMERIC(18,2) NOT NULL DEFAULT 0,
					tax_total NUMERIC(18,2) NOT NULL DEFAULT 0,
					grand_total NUMERIC(18,2) NOT NULL DEFAULT 0,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_invoices_docstatus_posting_date
					ON invoices(docstatus, posting_date);

				CREATE TABLE IF NOT EXISTS fiscal_years (
					id VARCHAR(36) PRIMARY KEY,
					year VARCHAR(50) NOT NULL UNIQUE,
					start_date DATE NOT NULL,
					end_date DATE NOT NULL,
					is_short_year BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS warehouse_types (
					name VARCHAR(100) PRIMARY KEY,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS singles (
					doctype VARCHAR(100) NOT NULL,
					fieldname VARCHAR(100) NOT NULL,
					value TEXT NOT NULL DEFAULT '',
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (doctype, fieldname)
				);

				CREATE TABLE IF NOT EXISTS defaults (
					defkey VARCHAR(100) PRIMARY KEY,
					defvalue TEXT NOT NULL DEFAULT '',
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS installed_applications (
					app_name VARCHAR(100) PRIMARY KEY,
					is_setup_complete BOOLEAN NOT NULL DEFAULT FALSE,
					installed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`,
		},
		{
			Version:     2,
			Description: "Seed reserved users",
			SQL: `
				INSERT INTO users (id, email, first_name, last_name, password_hash, enabled, user_type)
				VALUES
					('00000000-0000-0000-0000-000000000001', 'Administrator', 'Administrator', '', '', TRUE, 'System User'),
					('00000000-0000-0000-0000-000000000002', 'Guest', 'Guest', '', '', TRUE, 'Website User')
				ON CONFLICT (email) DO NOTHING;

				INSERT INTO user_roles (user_id, role)
				VALUES ('00000000-0000-0000-0000-000000000001', 'System Manager')
				ON CONFLICT DO NOTHING;
			`,
		},
		{
			Version:     3,
			Description: "Seed installed applications",
			SQL: `
				INSERT INTO installed_applications (app_name)
				VALUES ('core'), ('erp')
				ON CONFLICT (app_name) DO NOTHING;
			`,
		},
	}
}

// RunMigrations aplica las migraciones pendientes, cada una en su transacción.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return fmt.Errorf("query applied migrations: %w", err)
	}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}

	for _, m := range GetMigrations() {
		if applied[m.Version] {
			continue
		}
		log.Info().Int("version", m.Version).Str("description", m.Description).Msg("Aplicando migración")

		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("execute migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
			m.Version, m.Description,
		); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
