package entity

import "time"

// Supplier representa un proveedor del tenant.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT, único por sitio
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
