package repository

import (
	"context"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// SettingsRepository persiste los doctypes "single" (filas doctype/campo/valor)
// y los defaults globales del sitio. Todos los valores son texto, como en el
// resto de la plataforma; los booleanos se guardan como "0"/"1".
type SettingsRepository interface {
	SetSingleValue(ctx context.Context, doctype, fieldname, value string) error
	GetSingleValue(ctx context.Context, doctype, fieldname string) (string, error)
	SetDefault(ctx context.Context, key, value string) error
	GetDefault(ctx context.Context, key string) (string, error)
}

// InstalledAppRepository consulta y marca las aplicaciones de plataforma
// instaladas en el sitio.
type InstalledAppRepository interface {
	List(ctx context.Context) ([]*entity.InstalledApp, error)
	MarkSetupComplete(ctx context.Context, appName string) error
}
