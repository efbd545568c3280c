package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)
var _ repository.InstalledAppRepository = (*InstalledAppRepo)(nil)

// SettingsRepo persiste singles y defaults del sitio sobre PostgreSQL.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// SetSingleValue fija un campo de un doctype single (upsert).
func (r *SettingsRepo) SetSingleValue(ctx context.Context, doctype, fieldname, value string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO singles (doctype, fieldname, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (doctype, fieldname)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		doctype, fieldname, value)
	if err != nil {
		return fmt.Errorf("set single %s.%s: %w", doctype, fieldname, err)
	}
	return nil
}

// GetSingleValue lee un campo de un doctype single. "" si no existe.
func (r *SettingsRepo) GetSingleValue(ctx context.Context, doctype, fieldname string) (string, error) {
	var value string
	err := r.q.QueryRow(ctx, `
		SELECT value FROM singles WHERE doctype = $1 AND fieldname = $2`,
		doctype, fieldname).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("get single %s.%s: %w", doctype, fieldname, err)
	}
	return value, nil
}

// SetDefault fija un default global del sitio (upsert).
func (r *SettingsRepo) SetDefault(ctx context.Context, key, value string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO defaults (defkey, defvalue, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (defkey)
		DO UPDATE SET defvalue = EXCLUDED.defvalue, updated_at = NOW()`,
		key, value)
	if err != nil {
		return fmt.Errorf("set default %s: %w", key, err)
	}
	return nil
}

// GetDefault lee un default global. "" si no existe.
func (r *SettingsRepo) GetDefault(ctx context.Context, key string) (string, error) {
	var value string
	err := r.q.QueryRow(ctx, `
		SELECT defvalue FROM defaults WHERE defkey = $1`, key).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("get default %s: %w", key, err)
	}
	return value, nil
}

// InstalledAppRepo consulta las aplicaciones instaladas en el sitio.
type InstalledAppRepo struct {
	q Querier
}

// NewInstalledAppRepository construye el adaptador.
func NewInstalledAppRepository(q Querier) *InstalledAppRepo {
	return &InstalledAppRepo{q: q}
}

// List devuelve las aplicaciones instaladas.
func (r *InstalledAppRepo) List(ctx context.Context) ([]*entity.InstalledApp, error) {
	rows, err := r.q.Query(ctx, `
		SELECT app_name, is_setup_complete, installed_at
		FROM installed_applications ORDER BY installed_at`)
	if err != nil {
		return nil, fmt.Errorf("list installed apps: %w", err)
	}
	defer rows.Close()

	var list []*entity.InstalledApp
	for rows.Next() {
		var app entity.InstalledApp
		if err := rows.Scan(&app.AppName, &app.IsSetupComplete, &app.InstalledAt); err != nil {
			return nil, fmt.Errorf("scan installed app: %w", err)
		}
		list = append(list, &app)
	}
	return list, rows.Err()
}

// MarkSetupComplete marca una aplicación como configurada.
func (r *InstalledAppRepo) MarkSetupComplete(ctx context.Context, appName string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE installed_applications SET is_setup_complete = true WHERE app_name = $1`,
		appName)
	if err != nil {
		return fmt.Errorf("mark app setup complete: %w", err)
	}
	return nil
}
