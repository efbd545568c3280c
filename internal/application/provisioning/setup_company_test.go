package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

func validSetupConfig() dto.SetupCompanyConfig {
	return dto.SetupCompanyConfig{
		CompanyName:     "Acme SAS",
		CompanyAbbr:     "ACM",
		Country:         "Colombia",
		Currency:        "COP",
		ChartOfAccounts: "Standard",
		FYName:          "2025-2026",
		FYStartDate:     "2025-04-01",
		FYEndDate:       "2026-03-31",
	}
}

// ─────────────────────────────────────────────
// Flujo completo
// ─────────────────────────────────────────────

func TestSetupCompany_FlujoCompleto(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	svc := f.setupService()

	result := svc.ExecuteEncoded(context.Background(), encodeConfig(t, validSetupConfig()))
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Company Acme SAS created successfully", result.Message)

	// site_config.json
	assert.True(t, f.site.setupComplete)

	// System Settings
	assert.Equal(t, "1", f.settings.singles[singleKey(entity.DoctypeSystemSettings, "setup_complete")])
	assert.Equal(t, "0", f.settings.singles[singleKey(entity.DoctypeSystemSettings, "enable_onboarding")])
	assert.Equal(t, "Colombia", f.settings.singles[singleKey(entity.DoctypeSystemSettings, "country")])
	assert.Equal(t, "en", f.settings.singles[singleKey(entity.DoctypeSystemSettings, "language")])
	assert.Equal(t, "Asia/Kolkata", f.settings.singles[singleKey(entity.DoctypeSystemSettings, "time_zone")])

	// Aplicaciones instaladas
	assert.ElementsMatch(t, []string{"core", "erp"}, f.apps.marked)

	// Escritorio
	assert.Equal(t, "home", f.settings.defaults[entity.DefaultDesktopHome])

	// Tipos de bodega
	for _, wt := range entity.DefaultWarehouseTypes {
		assert.True(t, f.warehouses.names[wt], "falta el tipo de bodega %s", wt)
	}

	// Empresa y defaults
	company := f.companies.byName["Acme SAS"]
	require.NotNil(t, company)
	assert.Equal(t, "ACM", company.Abbr)
	assert.Equal(t, "COP", company.Currency)
	assert.Equal(t, "Standard", company.ChartOfAccounts)
	assert.True(t, company.PerpetualInventory)
	assert.Equal(t, "Acme SAS", f.settings.defaults[entity.DefaultCompany])
	assert.Equal(t, "Colombia", f.settings.defaults[entity.DefaultCountry])
	assert.Equal(t, "COP", f.settings.defaults[entity.DefaultCurrency])

	// Año fiscal
	fy := f.fiscal.byYear["2025-2026"]
	require.NotNil(t, fy)
	assert.False(t, fy.IsShortYear)
	assert.Equal(t, "2025-2026", f.settings.defaults[entity.DefaultFiscalYear])

	// Singles complementarios
	assert.Equal(t, "1", f.settings.singles[singleKey(entity.DoctypeERPSettings, "setup_complete")])
	assert.Equal(t, "Acme SAS", f.settings.singles[singleKey(entity.DoctypeGlobalDefaults, "default_company")])
	assert.Equal(t, "2025-2026", f.settings.singles[singleKey(entity.DoctypeGlobalDefaults, "current_fiscal_year")])
	assert.Equal(t, "Nos", f.settings.singles[singleKey(entity.DoctypeStockSettings, "stock_uom")])

	// Cache limpiado
	assert.Equal(t, 1, f.cache.cleared)
}

func TestSetupCompany_Idempotente(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	svc := f.setupService()
	b64 := encodeConfig(t, validSetupConfig())

	first := svc.ExecuteEncoded(context.Background(), b64)
	require.True(t, first.Success, first.Message)
	createdID := f.companies.byName["Acme SAS"].ID

	second := svc.ExecuteEncoded(context.Background(), b64)
	require.True(t, second.Success, second.Message)

	assert.Len(t, f.companies.byName, 1, "repetir el setup no debe duplicar la empresa")
	assert.Equal(t, createdID, f.companies.byName["Acme SAS"].ID)
	assert.Len(t, f.fiscal.byYear, 1)
	assert.Len(t, f.warehouses.names, len(entity.DefaultWarehouseTypes))
	assert.Equal(t, 2, f.cache.cleared)
}

func TestSetupCompany_NormalizaMoneda(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	cfg := validSetupConfig()
	cfg.Currency = "cop"

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "COP", f.companies.byName["Acme SAS"].Currency)
	assert.Equal(t, "COP", f.settings.defaults[entity.DefaultCurrency])
}

func TestSetupCompany_PlanDeCuentasPorDefecto(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	cfg := validSetupConfig()
	cfg.ChartOfAccounts = ""

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Standard", f.companies.byName["Acme SAS"].ChartOfAccounts)
}

// ─────────────────────────────────────────────
// Validación de entrada
// ─────────────────────────────────────────────

func TestSetupCompany_ConfigB64Ilegible(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})

	result := f.setupService().ExecuteEncoded(context.Background(), "esto no es base64 !!!")
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "decode config_b64")
	assert.False(t, f.site.setupComplete, "una configuración ilegible no debe mutar nada")
}

func TestSetupCompany_FaltaClaveRequerida(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	cfg := validSetupConfig()
	cfg.CompanyName = ""

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.False(t, result.Success)
	assert.Equal(t, "missing required config key: company_name", result.Message)
}

func TestSetupCompany_MonedaInvalida(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	cfg := validSetupConfig()
	cfg.Currency = "PESOS"

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "invalid currency")
	assert.False(t, f.site.setupComplete, "la validación corre antes del primer paso")
}

func TestSetupCompany_FechaInvalida(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	cfg := validSetupConfig()
	cfg.FYStartDate = "01/04/2025"

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "invalid fy_start_date")
}

func TestSetupCompany_RangoFiscalInvertido(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	cfg := validSetupConfig()
	cfg.FYStartDate = "2026-03-31"
	cfg.FYEndDate = "2025-04-01"

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "before fy_start_date")
}

// ─────────────────────────────────────────────
// Fallos a mitad de secuencia
// ─────────────────────────────────────────────

func TestSetupCompany_LimiteDeEmpresas(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{MaxCompanies: 1})
	f.companies.byName["Otra SAS"] = &entity.Company{ID: "otra-id", Name: "Otra SAS"}

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, validSetupConfig()))
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "número máximo de empresas")
	assert.Nil(t, f.companies.byName["Acme SAS"], "la empresa no debe crearse sobre el límite")

	// Los pasos anteriores ya quedaron confirmados: no hay rollback entre pasos.
	assert.True(t, f.site.setupComplete)
	assert.Equal(t, "1", f.settings.singles[singleKey(entity.DoctypeSystemSettings, "setup_complete")])
}

func TestSetupCompany_MejorEsfuerzoNoAborta(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	f.settings.failDoctype = entity.DoctypeERPSettings

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, validSetupConfig()))
	require.True(t, result.Success, "un fallo en ERP Settings no aborta el setup")

	// Los pasos a mejor esfuerzo posteriores sí corren.
	assert.Equal(t, "Nos", f.settings.singles[singleKey(entity.DoctypeStockSettings, "stock_uom")])
	assert.Empty(t, f.settings.singles[singleKey(entity.DoctypeERPSettings, "setup_complete")])
}

func TestSetupCompany_FalloDeCacheAborta(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	f.cache.clearErr = errors.New("connection refused")

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, validSetupConfig()))
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "clear cache")
}

func TestSetupCompany_VerificacionFinal(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	// El repo acepta el insert pero lo descarta: la verificación final debe
	// detectar que la empresa no quedó persistida.
	f.companies.dropInserts = true

	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, validSetupConfig()))
	require.False(t, result.Success)
	assert.Equal(t, "Company 'Acme SAS' not found after creation", result.Message)
}

// ─────────────────────────────────────────────
// Estado
// ─────────────────────────────────────────────

func TestStatus_SitioRecienCreado(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	svc := NewStatusService(f.site, f.companies, f.settings, zerolog.Nop())

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.SetupComplete)
	assert.False(t, status.CompanyExists)
	assert.Empty(t, status.DefaultCompany)
}

func TestStatus_DespuesDelSetup(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	result := f.setupService().ExecuteEncoded(context.Background(), encodeConfig(t, validSetupConfig()))
	require.True(t, result.Success, result.Message)

	svc := NewStatusService(f.site, f.companies, f.settings, zerolog.Nop())
	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.SetupComplete)
	assert.True(t, status.CompanyExists)
	assert.Equal(t, "Acme SAS", status.DefaultCompany)
	assert.Equal(t, "2025-2026", status.DefaultFiscalYear)

	done, err := svc.SetupComplete(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
}
