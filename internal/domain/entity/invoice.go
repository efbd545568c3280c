package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados documentales de una factura. Mismo modelo que el resto de la
// plataforma: 0 borrador, 1 enviada (submit), 2 cancelada. El límite mensual
// del plan solo aplica al pasar a DocStatusSubmitted.
const (
	DocStatusDraft     = 0
	DocStatusSubmitted = 1
	DocStatusCancelled = 2
)

// Invoice representa la cabecera de una factura de venta.
type Invoice struct {
	ID          string
	CustomerID  string
	PostingDate time.Time // fecha contable; define el mes para el límite del plan
	DocStatus   int
	NetTotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	GrandTotal  decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSubmitted informa si la factura ya fue enviada.
func (i *Invoice) IsSubmitted() bool {
	return i.DocStatus == DocStatusSubmitted
}
