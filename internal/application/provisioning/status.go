package provisioning

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

// StatusService reporta el estado de aprovisionamiento del sitio. Lo consume
// el endpoint de estado y el middleware que bloquea los documentos hasta que
// el setup termine.
type StatusService struct {
	site      SiteConfig
	companies repository.CompanyRepository
	settings  repository.SettingsRepository
	log       zerolog.Logger
}

// NewStatusService construye el servicio de estado.
func NewStatusService(site SiteConfig, companies repository.CompanyRepository, settings repository.SettingsRepository, log zerolog.Logger) *StatusService {
	return &StatusService{site: site, companies: companies, settings: settings, log: log}
}

// Status arma el estado completo del sitio.
func (s *StatusService) Status(ctx context.Context) (dto.ProvisionStatus, error) {
	done, err := s.site.SetupComplete()
	if err != nil {
		return dto.ProvisionStatus{}, err
	}

	companies, err := s.companies.List(ctx, 1, 0)
	if err != nil {
		return dto.ProvisionStatus{}, err
	}

	defaultCompany, err := s.settings.GetDefault(ctx, entity.DefaultCompany)
	if err != nil {
		return dto.ProvisionStatus{}, err
	}
	defaultFY, err := s.settings.GetDefault(ctx, entity.DefaultFiscalYear)
	if err != nil {
		return dto.ProvisionStatus{}, err
	}

	return dto.ProvisionStatus{
		SetupComplete:     done,
		CompanyExists:     len(companies) > 0,
		DefaultCompany:    defaultCompany,
		DefaultFiscalYear: defaultFY,
	}, nil
}

// SetupComplete informa si el sitio ya completó el setup. Respaldado por el
// site_config.json, así que no toca la base de datos.
func (s *StatusService) SetupComplete(_ context.Context) (bool, error) {
	return s.site.SetupComplete()
}
