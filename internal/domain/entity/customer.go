package entity

import "time"

// Customer representa un cliente del tenant (globales al sitio).
type Customer struct {
	ID        string
	Name      string
	TaxID     string // NIT o Cédula, único por sitio
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
