package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// UpdateDocStatus cambia el estado documental (submit/cancel).
	UpdateDocStatus(ctx context.Context, id string, docStatus int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	// CountSubmittedBetween cuenta facturas con docstatus=1 y posting_date en
	// [from, to] (fechas inclusive), excluyendo excludeID si no es vacío.
	CountSubmittedBetween(ctx context.Context, from, to time.Time, excludeID string) (int, error)
}
