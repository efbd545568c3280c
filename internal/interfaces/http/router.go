package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Provisor-api/internal/application/auth"
	"github.com/jhoicas/Provisor-api/internal/application/limits"
	"github.com/jhoicas/Provisor-api/internal/application/provisioning"
	"github.com/jhoicas/Provisor-api/internal/application/usecase"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SetupCompany    *provisioning.SetupCompanyService
	CreateUser      *provisioning.CreateUserService
	ProvisionStatus *provisioning.StatusService
	LimitsStore     *limits.Store
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	CompanyUC       *usecase.CompanyUseCase
	CustomerUC      *usecase.CustomerUseCase
	SupplierUC      *usecase.SupplierUseCase
	InvoiceUC       *usecase.InvoiceUseCase
	WarehouseTypeUC *usecase.WarehouseTypeUseCase
	JWTSecret       string
	ProvisionKey    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Aprovisionamiento (protegido por llave compartida con el controlador)
	provision := api.Group("/provision", RequireProvisionKey(deps.ProvisionKey))
	provisionHandler := NewProvisionHandler(deps.SetupCompany, deps.CreateUser, deps.ProvisionStatus)
	provision.Post("/setup-company", provisionHandler.SetupCompany)
	provision.Post("/create-user", provisionHandler.CreateUser)
	provision.Get("/status", provisionHandler.Status)

	// Límites del plan (público: los invoca el controlador SaaS sin sesión)
	limitsGroup := api.Group("/limits")
	limitsHandler := NewLimitsHandler(deps.LimitsStore)
	limitsGroup.Post("/sync", limitsHandler.Sync)
	limitsGroup.Get("/current", limitsHandler.Current)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas de documentos: requieren Bearer Token y sitio aprovisionado
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret),
		RequireSetupComplete(deps.ProvisionStatus),
	)

	// Users (el alta exige System Manager)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", RequireRole(entity.RoleSystemManager), userHandler.Create)

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/submit", invoiceHandler.Submit)

	// Warehouse types (solo lectura, los crea el setup)
	warehouseTypes := protected.Group("/warehouse-types")
	warehouseTypeHandler := NewWarehouseTypeHandler(deps.WarehouseTypeUC)
	warehouseTypes.Get("/", warehouseTypeHandler.List)
}
