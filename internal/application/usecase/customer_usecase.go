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
)

// CustomerUseCase aplica reglas de negocio para clientes.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	enforcer *limits.Enforcer
}

// NewCustomerUseCase construye el caso de uso con el puerto de persistencia.
func NewCustomerUseCase(repo repository.CustomerRepository, enforcer *limits.Enforcer) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, enforcer: enforcer}
}

// Create crea un nuevo cliente. Valida el límite del plan antes de insertar.
// Devuelve domain.ErrDuplicate si el tax_id ya existe.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	existing, _ := uc.repo.GetByTaxID(ctx, in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.enforcer.CheckCustomerLimit(ctx, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
