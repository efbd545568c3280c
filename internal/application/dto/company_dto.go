package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Abbr            string `json:"abbr" validate:"required,min=1,max=10"`
	Country         string `json:"country" validate:"required"`
	Currency        string `json:"currency" validate:"required,len=3"`
	ChartOfAccounts string `json:"chart_of_accounts"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Abbr               string    `json:"abbr"`
	Country            string    `json:"country"`
	Currency           string    `json:"currency"`
	ChartOfAccounts    string    `json:"chart_of_accounts"`
	PerpetualInventory bool      `json:"perpetual_inventory"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
