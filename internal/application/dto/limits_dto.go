package dto

import "github.com/jhoicas/Provisor-api/internal/domain/entity"

// SyncLimitsRequest entrada del endpoint de sincronización de cuotas. El
// controlador SaaS lo invoca al asignar o cambiar el plan. Los campos ausentes
// quedan en cero (ilimitado). Se aceptan JSON y form-encoding.
type SyncLimitsRequest struct {
	MaxUsers            int     `json:"max_users" form:"max_users"`
	MaxCustomers        int     `json:"max_customers" form:"max_customers"`
	MaxSuppliers        int     `json:"max_suppliers" form:"max_suppliers"`
	MaxCompanies        int     `json:"max_companies" form:"max_companies"`
	MaxInvoicesPerMonth int     `json:"max_invoices_per_month" form:"max_invoices_per_month"`
	MaxStorageGB        float64 `json:"max_storage_gb" form:"max_storage_gb"`
}

// ToLimits convierte la petición al valor de dominio.
func (r SyncLimitsRequest) ToLimits() entity.PlanLimits {
	return entity.PlanLimits{
		MaxUsers:            r.MaxUsers,
		MaxCustomers:        r.MaxCustomers,
		MaxSuppliers:        r.MaxSuppliers,
		MaxCompanies:        r.MaxCompanies,
		MaxInvoicesPerMonth: r.MaxInvoicesPerMonth,
		MaxStorageGB:        r.MaxStorageGB,
	}
}

// SyncLimitsResponse salida de la sincronización de cuotas.
type SyncLimitsResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Limits  entity.PlanLimits `json:"limits"`
}

// SyncLimitsError salida de la sincronización cuando falla. El campo se llama
// "error" (no "message"): es el contrato que ya consume el controlador.
type SyncLimitsError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CurrentLimitsResponse salida de la consulta de cuotas vigentes.
type CurrentLimitsResponse struct {
	Success bool              `json:"success"`
	Limits  entity.PlanLimits `json:"limits"`
}
