package entity

// PlanLimits son las cuotas del plan SaaS asignado al tenant. Cero significa
// ilimitado. Los tags JSON son el formato de intercambio con el controlador
// SaaS y el que se persiste en cache y site_config.json.
type PlanLimits struct {
	MaxUsers            int     `json:"max_users"`
	MaxCustomers        int     `json:"max_customers"`
	MaxSuppliers        int     `json:"max_suppliers"`
	MaxCompanies        int     `json:"max_companies"`
	MaxInvoicesPerMonth int     `json:"max_invoices_per_month"`
	MaxStorageGB        float64 `json:"max_storage_gb"` // informativo, no se valida en guardado
}

// IsZero informa si no hay ningún límite configurado.
func (p PlanLimits) IsZero() bool {
	return p == PlanLimits{}
}
