package provisioning

import (
	"context"

	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repos atados a una transacción. Cada paso
// del aprovisionamiento corre en su propia transacción: un paso fallido se
// revierte solo, los pasos anteriores quedan confirmados.
type TxRunner interface {
	RunSetup(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		fiscalYearRepo repository.FiscalYearRepository,
		warehouseTypeRepo repository.WarehouseTypeRepository,
		settingsRepo repository.SettingsRepository,
		appRepo repository.InstalledAppRepository,
	) error) error
	RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository) error) error
}

// SiteCache es el cache del sitio; el setup lo vacía al final para que los
// cambios de configuración tomen efecto.
type SiteCache interface {
	Clear(ctx context.Context) error
}

// SiteConfig es el site_config.json del tenant.
type SiteConfig interface {
	SetupComplete() (bool, error)
	SetSetupComplete() error
}

// Defaults son valores del sitio que el setup fija pero que no viajan en el
// config_b64; el operador los define por entorno.
type Defaults struct {
	Language string // default "en"
	TimeZone string // default "Asia/Kolkata"
}
