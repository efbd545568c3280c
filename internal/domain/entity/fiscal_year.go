package entity

import "time"

// FiscalYear representa un año fiscal del tenant. Year es la clave natural
// (ej. "2025-2026"); el setup lo crea y lo fija como default global.
type FiscalYear struct {
	ID          string
	Year        string
	StartDate   time.Time
	EndDate     time.Time
	IsShortYear bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
