package entity

import "time"

// Doctypes "single" (un solo registro, persistido como filas campo/valor).
// Los nombres coinciden con los que usa el escritorio de la plataforma.
const (
	DoctypeSystemSettings = "System Settings"
	DoctypeERPSettings    = "ERP Settings"
	DoctypeGlobalDefaults = "Global Defaults"
	DoctypeStockSettings  = "Stock Settings"
)

// Claves de defaults globales que escribe el aprovisionamiento.
const (
	DefaultCompany     = "company"
	DefaultCountry     = "country"
	DefaultCurrency    = "currency"
	DefaultFiscalYear  = "fiscal_year"
	DefaultDesktopHome = "desktop:home_page"
)

// InstalledApp representa una aplicación de plataforma instalada en el sitio.
// El setup marca todas como is_setup_complete para que el escritorio no vuelva
// a lanzar el asistente de configuración.
type InstalledApp struct {
	AppName         string
	IsSetupComplete bool
	InstalledAt     time.Time
}
