package dto

import "time"

// CreateInvoiceRequest entrada para crear una factura en borrador. Los montos
// llegan como string decimal para no perder precisión en el transporte.
type CreateInvoiceRequest struct {
	CustomerID  string `json:"customer_id" validate:"required,uuid"`
	PostingDate string `json:"posting_date"` // YYYY-MM-DD, default hoy
	NetTotal    string `json:"net_total" validate:"required"`
	TaxTotal    string `json:"tax_total"`
	GrandTotal  string `json:"grand_total" validate:"required"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	PostingDate string    `json:"posting_date"`
	DocStatus   int       `json:"docstatus"`
	NetTotal    string    `json:"net_total"`
	TaxTotal    string    `json:"tax_total"`
	GrandTotal  string    `json:"grand_total"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
