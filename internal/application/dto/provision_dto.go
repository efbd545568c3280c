package dto

// SetupCompanyConfig es la configuración que envía el controlador SaaS para el
// setup inicial del tenant. Llega como JSON codificado en base64 (config_b64),
// igual por CLI que por HTTP. Las claves son el contrato con el controlador.
type SetupCompanyConfig struct {
	CompanyName     string `json:"company_name"`
	CompanyAbbr     string `json:"company_abbr"`
	Country         string `json:"country"`
	Currency        string `json:"currency"`
	ChartOfAccounts string `json:"chart_of_accounts"` // opcional, default "Standard"
	FYName          string `json:"fy_name"`
	FYStartDate     string `json:"fy_start_date"` // YYYY-MM-DD
	FYEndDate       string `json:"fy_end_date"`   // YYYY-MM-DD
}

// CreateUserConfig es la configuración para crear/actualizar el usuario
// inicial del tenant. También llega como config_b64.
type CreateUserConfig struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"` // opcional, default "User"
	LastName  string `json:"last_name"`  // opcional
	Password  string `json:"password"`
}

// ProvisionRequest cuerpo HTTP de los endpoints de aprovisionamiento.
type ProvisionRequest struct {
	ConfigB64 string `json:"config_b64" validate:"required"`
}

// ProvisionResult es el contrato de salida de las dos operaciones de
// aprovisionamiento: nunca se propaga un error, siempre se responde esto.
type ProvisionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProvisionStatus estado de aprovisionamiento del sitio.
type ProvisionStatus struct {
	SetupComplete     bool   `json:"setup_complete"`
	CompanyExists     bool   `json:"company_exists"`
	DefaultCompany    string `json:"default_company,omitempty"`
	DefaultFiscalYear string `json:"default_fiscal_year,omitempty"`
}
