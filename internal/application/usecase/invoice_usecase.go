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
	"github.com/shopspring/decimal"
)

const postingDateLayout = "2006-01-02"

// InvoiceUseCase aplica reglas de negocio para facturas de venta. El límite
// mensual del plan se valida al enviar (submit), no al crear el borrador.
type InvoiceUseCase struct {
	repo      repository.InvoiceRepository
	customers repository.CustomerRepository
	enforcer  *limits.Enforcer
}

// NewInvoiceUseCase construye el caso de uso con los puertos de persistencia.
func NewInvoiceUseCase(repo repository.InvoiceRepository, customers repository.CustomerRepository, enforcer *limits.Enforcer) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, customers: customers, enforcer: enforcer}
}

// Create crea una factura en borrador (docstatus 0). PostingDate vacío usa la
// fecha de hoy. Los montos llegan como string decimal.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	postingDate := time.Now()
	if in.PostingDate != "" {
		postingDate, err = time.Parse(postingDateLayout, in.PostingDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	netTotal, err := decimal.NewFromString(in.NetTotal)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	taxTotal := decimal.Zero
	if in.TaxTotal != "" {
		taxTotal, err = decimal.NewFromString(in.TaxTotal)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	grandTotal, err := decimal.NewFromString(in.GrandTotal)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	invoice := &entity.Invoice{
		ID:          uuid.New().String(),
		CustomerID:  in.CustomerID,
		PostingDate: postingDate,
		DocStatus:   entity.DocStatusDraft,
		NetTotal:    netTotal,
		TaxTotal:    taxTotal,
		GrandTotal:  grandTotal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// GetByID obtiene una factura por ID.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}
	return toInvoiceResponse(invoice), nil
}

// Submit envía una factura en borrador (docstatus 0 → 1). Aquí corre el
// validador del límite mensual: cuenta las facturas ya enviadas del mes
// calendario en curso, excluyendo la propia.
func (uc *InvoiceUseCase) Submit(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	if invoice.DocStatus != entity.DocStatusDraft {
		return nil, domain.ErrConflict
	}
	invoice.DocStatus = entity.DocStatusSubmitted
	if err := uc.enforcer.CheckInvoiceLimit(ctx, invoice, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateDocStatus(ctx, id, entity.DocStatusSubmitted); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// List lista facturas con paginación.
func (uc *InvoiceUseCase) List(ctx context.Context, limit, offset int) ([]dto.InvoiceResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv))
	}
	return items, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &dto.InvoiceResponse{
		ID:          inv.ID,
		CustomerID:  inv.CustomerID,
		PostingDate: inv.PostingDate.Format(postingDateLayout),
		DocStatus:   inv.DocStatus,
		NetTotal:    inv.NetTotal.String(),
		TaxTotal:    inv.TaxTotal.String(),
		GrandTotal:  inv.GrandTotal.String(),
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}
