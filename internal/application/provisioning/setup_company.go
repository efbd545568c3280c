package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/application/limits"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

// SetupCompanyService ejecuta el setup inicial del sitio del tenant: marca el
// sitio como configurado, crea la empresa y el año fiscal, y deja los defaults
// listos para operar. Los pasos se confirman uno a uno; un paso fallido aborta
// el resto pero no revierte lo ya confirmado (el controlador puede reintentar,
// cada paso es idempotente).
type SetupCompanyService struct {
	tx        TxRunner
	companies repository.CompanyRepository
	settings  repository.SettingsRepository
	enforcer  *limits.Enforcer
	cache     SiteCache
	site      SiteConfig
	defaults  Defaults
	log       zerolog.Logger
}

// NewSetupCompanyService construye el servicio de setup.
func NewSetupCompanyService(
	tx TxRunner,
	companies repository.CompanyRepository,
	settings repository.SettingsRepository,
	enforcer *limits.Enforcer,
	cache SiteCache,
	site SiteConfig,
	defaults Defaults,
	log zerolog.Logger,
) *SetupCompanyService {
	if defaults.Language == "" {
		defaults.Language = "en"
	}
	if defaults.TimeZone == "" {
		defaults.TimeZone = "Asia/Kolkata"
	}
	return &SetupCompanyService{
		tx:        tx,
		companies: companies,
		settings:  settings,
		enforcer:  enforcer,
		cache:     cache,
		site:      site,
		defaults:  defaults,
		log:       log,
	}
}

// ExecuteEncoded descodifica el config_b64 y ejecuta el setup. Nunca devuelve
// error: cualquier fallo se convierte en el resultado {success, message} que
// espera el controlador SaaS.
func (s *SetupCompanyService) ExecuteEncoded(ctx context.Context, configB64 string) dto.ProvisionResult {
	var cfg dto.SetupCompanyConfig
	if err := decodeConfig(configB64, &cfg); err != nil {
		s.log.Error().Err(err).Msg("Configuración de setup ilegible")
		return dto.ProvisionResult{Success: false, Message: err.Error()}
	}
	if err := s.Execute(ctx, cfg); err != nil {
		s.log.Error().Err(err).Str("company", cfg.CompanyName).Msg("Setup del tenant falló")
		return dto.ProvisionResult{Success: false, Message: err.Error()}
	}
	return dto.ProvisionResult{
		Success: true,
		Message: fmt.Sprintf("Company %s created successfully", cfg.CompanyName),
	}
}

// Execute corre la secuencia completa de setup con la configuración ya
// descodificada.
func (s *SetupCompanyService) Execute(ctx context.Context, cfg dto.SetupCompanyConfig) error {
	if err := validateSetupConfig(&cfg); err != nil {
		return err
	}
	cur, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return fmt.Errorf("invalid currency %q: %w", cfg.Currency, err)
	}
	currencyCode := cur.String()
	fyStart, err := time.Parse(dateLayout, cfg.FYStartDate)
	if err != nil {
		return fmt.Errorf("invalid fy_start_date %q: %w", cfg.FYStartDate, err)
	}
	fyEnd, err := time.Parse(dateLayout, cfg.FYEndDate)
	if err != nil {
		return fmt.Errorf("invalid fy_end_date %q: %w", cfg.FYEndDate, err)
	}
	if fyEnd.Before(fyStart) {
		return fmt.Errorf("fy_end_date %s is before fy_start_date %s", cfg.FYEndDate, cfg.FYStartDate)
	}

	s.log.Info().
		Str("company", cfg.CompanyName).
		Str("abbr", cfg.CompanyAbbr).
		Str("country", cfg.Country).
		Str("currency", currencyCode).
		Msg("Iniciando setup del tenant")

	// Paso 1: marcar setup_complete en site_config.json.
	if err := s.site.SetSetupComplete(); err != nil {
		return fmt.Errorf("update site config: %w", err)
	}
	s.log.Info().Msg("site_config.json marcado con setup_complete=1")

	// Paso 2: System Settings (apaga el asistente de configuración).
	lang := s.resolveLanguage()
	err = s.tx.RunSetup(ctx, func(
		_ repository.CompanyRepository,
		_ repository.FiscalYearRepository,
		_ repository.WarehouseTypeRepository,
		settings repository.SettingsRepository,
		_ repository.InstalledAppRepository,
	) error {
		values := [][2]string{
			{"setup_complete", "1"},
			{"enable_onboarding", "0"},
			{"country", cfg.Country},
			{"language", lang},
			{"time_zone", s.defaults.TimeZone},
		}
		for _, v := range values {
			if err := settings.SetSingleValue(ctx, entity.DoctypeSystemSettings, v[0], v[1]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Msg("System Settings actualizado")

	// Paso 3: marcar todas las aplicaciones instaladas como configuradas.
	err = s.tx.RunSetup(ctx, func(
		_ repository.CompanyRepository,
		_ repository.FiscalYearRepository,
		_ repository.WarehouseTypeRepository,
		_ repository.SettingsRepository,
		apps repository.InstalledAppRepository,
	) error {
		installed, err := apps.List(ctx)
		if err != nil {
			return err
		}
		for _, app := range installed {
			if err := apps.MarkSetupComplete(ctx, app.AppName); err != nil {
				return err
			}
			s.log.Info().Str("app", app.AppName).Msg("Aplicación marcada como configurada")
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Paso 4: página de inicio del escritorio (evita el redirect al asistente).
	if err := s.settings.SetDefault(ctx, entity.DefaultDesktopHome, "home"); err != nil {
		return fmt.Errorf("set desktop home page: %w", err)
	}
	s.log.Info().Msg("Página de inicio del escritorio fijada en home")

	// Paso 5: tipos de bodega que el módulo de inventario necesita.
	err = s.tx.RunSetup(ctx, func(
		_ repository.CompanyRepository,
		_ repository.FiscalYearRepository,
		warehouseTypes repository.WarehouseTypeRepository,
		_ repository.SettingsRepository,
		_ repository.InstalledAppRepository,
	) error {
		for _, name := range entity.DefaultWarehouseTypes {
			exists, err := warehouseTypes.Exists(ctx, name)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := warehouseTypes.Create(ctx, &entity.WarehouseType{Name: name, CreatedAt: time.Now()}); err != nil {
				return err
			}
			s.log.Info().Str("type", name).Msg("Tipo de bodega creado")
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Paso 6: la empresa, validada contra el límite del plan, más los defaults
	// de empresa, país y moneda.
	err = s.tx.RunSetup(ctx, func(
		companies repository.CompanyRepository,
		_ repository.FiscalYearRepository,
		_ repository.WarehouseTypeRepository,
		settings repository.SettingsRepository,
		_ repository.InstalledAppRepository,
	) error {
		existing, err := companies.GetByName(ctx, cfg.CompanyName)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := s.enforcer.CheckCompanyLimit(ctx, ""); err != nil {
				return err
			}
			now := time.Now()
			company := &entity.Company{
				ID:                 uuid.New().String(),
				Name:               cfg.CompanyName,
				Abbr:               cfg.CompanyAbbr,
				Country:            cfg.Country,
				Currency:           currencyCode,
				ChartOfAccounts:    cfg.ChartOfAccounts,
				PerpetualInventory: true,
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			if err := companies.Create(ctx, company); err != nil {
				return err
			}
			s.log.Info().Str("company", cfg.CompanyName).Msg("Empresa creada")
		} else {
			s.log.Info().Str("company", cfg.CompanyName).Msg("La empresa ya existe")
		}

		defaults := [][2]string{
			{entity.DefaultCompany, cfg.CompanyName},
			{entity.DefaultCountry, cfg.Country},
			{entity.DefaultCurrency, currencyCode},
		}
		for _, d := range defaults {
			if err := settings.SetDefault(ctx, d[0], d[1]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Paso 7: año fiscal más su default global.
	err = s.tx.RunSetup(ctx, func(
		_ repository.CompanyRepository,
		fiscalYears repository.FiscalYearRepository,
		_ repository.WarehouseTypeRepository,
		settings repository.SettingsRepository,
		_ repository.InstalledAppRepository,
	) error {
		existing, err := fiscalYears.GetByYear(ctx, cfg.FYName)
		if err != nil {
			return err
		}
		if existing == nil {
			now := time.Now()
			fy := &entity.FiscalYear{
				ID:          uuid.New().String(),
				Year:        cfg.FYName,
				StartDate:   fyStart,
				EndDate:     fyEnd,
				IsShortYear: false,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := fiscalYears.Create(ctx, fy); err != nil {
				return err
			}
			s.log.Info().Str("fiscal_year", cfg.FYName).Msg("Año fiscal creado")
		} else {
			s.log.Info().Str("fiscal_year", cfg.FYName).Msg("El año fiscal ya existe")
		}
		return settings.SetDefault(ctx, entity.DefaultFiscalYear, cfg.FYName)
	})
	if err != nil {
		return err
	}

	// Pasos 8 a 10: ajustes complementarios, a mejor esfuerzo. Un fallo aquí
	// se registra y no aborta el setup.
	s.bestEffortSingles(ctx, entity.DoctypeERPSettings, [][2]string{
		{"setup_complete", "1"},
	})
	s.bestEffortSingles(ctx, entity.DoctypeGlobalDefaults, [][2]string{
		{"default_company", cfg.CompanyName},
		{"current_fiscal_year", cfg.FYName},
		{"country", cfg.Country},
		{"default_currency", currencyCode},
	})
	s.bestEffortSingles(ctx, entity.DoctypeStockSettings, [][2]string{
		{"stock_uom", "Nos"},
	})

	// Paso 11: limpiar el cache del sitio para que los cambios tomen efecto.
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	s.log.Info().Msg("Cache del sitio limpiado")

	// Paso 12: verificación final.
	verified, err := s.companies.GetByName(ctx, cfg.CompanyName)
	if err != nil {
		return fmt.Errorf("verify company: %w", err)
	}
	if verified == nil {
		return fmt.Errorf("Company '%s' not found after creation", cfg.CompanyName)
	}
	return nil
}

// bestEffortSingles escribe campos de un doctype single en una transacción;
// los fallos solo se registran.
func (s *SetupCompanyService) bestEffortSingles(ctx context.Context, doctype string, values [][2]string) {
	err := s.tx.RunSetup(ctx, func(
		_ repository.CompanyRepository,
		_ repository.FiscalYearRepository,
		_ repository.WarehouseTypeRepository,
		settings repository.SettingsRepository,
		_ repository.InstalledAppRepository,
	) error {
		for _, v := range values {
			if err := settings.SetSingleValue(ctx, doctype, v[0], v[1]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Str("doctype", doctype).Msg("No se pudo actualizar el doctype single")
		return
	}
	s.log.Info().Str("doctype", doctype).Msg("Doctype single actualizado")
}

// resolveLanguage valida el código de idioma configurado; ante un código
// inválido se usa "en".
func (s *SetupCompanyService) resolveLanguage() string {
	tag, err := language.Parse(s.defaults.Language)
	if err != nil {
		s.log.Warn().Str("language", s.defaults.Language).Msg("Código de idioma inválido, usando en")
		return "en"
	}
	return tag.String()
}

func validateSetupConfig(cfg *dto.SetupCompanyConfig) error {
	required := [][2]string{
		{"company_name", cfg.CompanyName},
		{"company_abbr", cfg.CompanyAbbr},
		{"country", cfg.Country},
		{"currency", cfg.Currency},
		{"fy_name", cfg.FYName},
		{"fy_start_date", cfg.FYStartDate},
		{"fy_end_date", cfg.FYEndDate},
	}
	for _, r := range required {
		if r[1] == "" {
			return fmt.Errorf("missing required config key: %s", r[0])
		}
	}
	if cfg.ChartOfAccounts == "" {
		cfg.ChartOfAccounts = "Standard"
	}
	return nil
}
