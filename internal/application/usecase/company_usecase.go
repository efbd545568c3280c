package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/application/limits"
	"github.com/jhoicas/Provisor-api/internal/domain"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
	"golang.org/x/text/currency"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
// Toda alta pasa por el enforcer de límites del plan.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	enforcer *limits.Enforcer
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, enforcer *limits.Enforcer) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, enforcer: enforcer}
}

// Create crea una nueva empresa. Genera ID y valida el límite del plan antes
// de insertar. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, _ := uc.repo.GetByName(ctx, in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	cur, err := currency.ParseISO(in.Currency)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.enforcer.CheckCompanyLimit(ctx, ""); err != nil {
		return nil, err
	}
	chart := in.ChartOfAccounts
	if chart == "" {
		chart = "Standard"
	}
	now := time.Now()
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Abbr:               in.Abbr,
		Country:            in.Country,
		Currency:           cur.String(),
		ChartOfAccounts:    chart,
		PerpetualInventory: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Abbr:               c.Abbr,
		Country:            c.Country,
		Currency:           c.Currency,
		ChartOfAccounts:    c.ChartOfAccounts,
		PerpetualInventory: c.PerpetualInventory,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
