package entity

import "time"

// Company representa una empresa dentro del sitio del tenant. Cada tenant tiene
// su propia base de datos, así que las empresas son globales al sitio (no hay
// scoping adicional). El aprovisionamiento crea la primera durante el setup.
type Company struct {
	ID                 string
	Name               string // nombre único de la empresa (clave natural para idempotencia)
	Abbr               string // abreviatura usada como sufijo contable
	Country            string
	Currency           string // código ISO 4217 (COP, USD, ...)
	ChartOfAccounts    string // plantilla del plan de cuentas ("Standard" por defecto)
	PerpetualInventory bool   // inventario perpetuo habilitado al crear
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
