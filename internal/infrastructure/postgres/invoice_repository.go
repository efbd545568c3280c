package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Provisor-api/internal/domain"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, customer_id, posting_date, docstatus, net_total, tax_total, grand_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CustomerID, inv.PostingDate, inv.DocStatus,
		inv.NetTotal, inv.TaxTotal, inv.GrandTotal,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, `
		SELECT id, customer_id, posting_date, docstatus, net_total, tax_total, grand_total, created_at, updated_at
		FROM invoices WHERE id = $1`, id).Scan(
		&inv.ID, &inv.CustomerID, &inv.PostingDate, &inv.DocStatus,
		&inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// UpdateDocStatus cambia el estado documental (0 borrador, 1 emitida, 2 anulada).
func (r *InvoiceRepo) UpdateDocStatus(ctx context.Context, id string, docStatus int) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET docstatus = $1, updated_at = NOW() WHERE id = $2`, docStatus, id)
	if err != nil {
		return fmt.Errorf("update invoice docstatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// List devuelve facturas con paginación.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, customer_id, posting_date, docstatus, net_total, tax_total, grand_total, created_at, updated_at
		FROM invoices ORDER BY posting_date DESC, created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CustomerID, &inv.PostingDate, &inv.DocStatus,
			&inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// CountSubmittedBetween cuenta facturas emitidas (docstatus = 1) con fecha de
// contabilización dentro del rango inclusivo [from, to]. Si excludeID no es
// vacío esa factura se excluye del conteo.
func (r *InvoiceRepo) CountSubmittedBetween(ctx context.Context, from, to time.Time, excludeID string) (int, error) {
	var count int
	var err error
	if excludeID == "" {
		err = r.q.QueryRow(ctx, `
			SELECT COUNT(*) FROM invoices
			WHERE docstatus = $1 AND posting_date >= $2 AND posting_date <= $3`,
			entity.DocStatusSubmitted, from, to).Scan(&count)
	} else {
		err = r.q.QueryRow(ctx, `
			SELECT COUNT(*) FROM invoices
			WHERE docstatus = $1 AND posting_date >= $2 AND posting_date <= $3 AND id <> $4`,
			entity.DocStatusSubmitted, from, to, excludeID).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count submitted invoices: %w", err)
	}
	return count, nil
}
