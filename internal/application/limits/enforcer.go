package limits

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Provisor-api/internal/domain"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// UserCounter cuenta usuarios de sistema habilitados, excluyendo los emails dados.
type UserCounter interface {
	CountActiveSystemUsers(ctx context.Context, excludeEmails ...string) (int, error)
}

// ResourceCounter cuenta documentos de un recurso, excluyendo excludeID si no es vacío.
type ResourceCounter interface {
	Count(ctx context.Context, excludeID string) (int, error)
}

// InvoiceCounter cuenta facturas emitidas dentro de un rango de fechas inclusivo.
type InvoiceCounter interface {
	CountSubmittedBetween(ctx context.Context, from, to time.Time, excludeID string) (int, error)
}

// Enforcer valida cada guardado de documento contra las cuotas del plan del
// tenant. Cada chequeo cuenta los documentos vigentes y bloquea cuando el
// conteo ya alcanzó el límite; límite cero significa ilimitado.
type Enforcer struct {
	store     *Store
	users     UserCounter
	customers ResourceCounter
	suppliers ResourceCounter
	companies ResourceCounter
	invoices  InvoiceCounter
}

// NewEnforcer construye el validador de cuotas.
func NewEnforcer(
	store *Store,
	users UserCounter,
	customers ResourceCounter,
	suppliers ResourceCounter,
	companies ResourceCounter,
	invoices InvoiceCounter,
) *Enforcer {
	return &Enforcer{
		store:     store,
		users:     users,
		customers: customers,
		suppliers: suppliers,
		companies: companies,
		invoices:  invoices,
	}
}

// CheckUserLimit valida el alta de un usuario contra max_users. Solo aplica a
// System User; Administrator y Guest quedan fuera del conteo y del chequeo.
func (e *Enforcer) CheckUserLimit(ctx context.Context, user *entity.User) error {
	if user.UserType != entity.UserTypeSystem {
		return nil
	}
	if entity.IsReserved(user.Email) {
		return nil
	}

	limits, err := e.store.Get(ctx)
	if err != nil {
		return err
	}
	if limits.MaxUsers == 0 {
		return nil
	}

	current, err := e.users.CountActiveSystemUsers(ctx, entity.UserAdministrator, entity.UserGuest, user.Email)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if current >= limits.MaxUsers {
		return &domain.LimitExceededError{
			Resource: "users",
			Limit:    limits.MaxUsers,
			Current:  current,
			Title:    "Límite de usuarios alcanzado",
			Message:  fmt.Sprintf("Alcanzaste el número máximo de usuarios (%d) permitido en tu plan. Actualiza tu plan para agregar más usuarios.", limits.MaxUsers),
		}
	}
	return nil
}

// CheckCustomerLimit valida un guardado de cliente contra max_customers.
// Para updates pasar el ID del documento para excluirlo del conteo.
func (e *Enforcer) CheckCustomerLimit(ctx context.Context, excludeID string) error {
	limits, err := e.store.Get(ctx)
	if err != nil {
		return err
	}
	if limits.MaxCustomers == 0 {
		return nil
	}

	current, err := e.customers.Count(ctx, excludeID)
	if err != nil {
		return fmt.Errorf("count customers: %w", err)
	}
	if current >= limits.MaxCustomers {
		return &domain.LimitExceededError{
			Resource: "customers",
			Limit:    limits.MaxCustomers,
			Current:  current,
			Title:    "Límite de clientes alcanzado",
			Message:  fmt.Sprintf("Alcanzaste el número máximo de clientes (%d) permitido en tu plan. Actualiza tu plan para agregar más clientes.", limits.MaxCustomers),
		}
	}
	return nil
}

// CheckSupplierLimit valida un guardado de proveedor contra max_suppliers.
func (e *Enforcer) CheckSupplierLimit(ctx context.Context, excludeID string) error {
	limits, err := e.store.Get(ctx)
	if err != nil {
		return err
	}
	if limits.MaxSuppliers == 0 {
		return nil
	}

	current, err := e.suppliers.Count(ctx, excludeID)
	if err != nil {
		return fmt.Errorf("count suppliers: %w", err)
	}
	if current >= limits.MaxSuppliers {
		return &domain.LimitExceededError{
			Resource: "suppliers",
			Limit:    limits.MaxSuppliers,
			Current:  current,
			Title:    "Límite de proveedores alcanzado",
			Message:  fmt.Sprintf("Alcanzaste el número máximo de proveedores (%d) permitido en tu plan. Actualiza tu plan para agregar más proveedores.", limits.MaxSuppliers),
		}
	}
	return nil
}

// CheckCompanyLimit valida un guardado de empresa contra max_companies.
func (e *Enforcer) CheckCompanyLimit(ctx context.Context, excludeID string) error {
	limits, err := e.store.Get(ctx)
	if err != nil {
		return err
	}
	if limits.MaxCompanies == 0 {
		return nil
	}

	current, err := e.companies.Count(ctx, excludeID)
	if err != nil {
		return fmt.Errorf("count companies: %w", err)
	}
	if current >= limits.MaxCompanies {
		return &domain.LimitExceededError{
			Resource: "companies",
			Limit:    limits.MaxCompanies,
			Current:  current,
			Title:    "Límite de empresas alcanzado",
			Message:  fmt.Sprintf("Alcanzaste el número máximo de empresas (%d) permitido en tu plan. Actualiza tu plan para agregar más empresas.", limits.MaxCompanies),
		}
	}
	return nil
}

// CheckInvoiceLimit valida la emisión de una factura contra
// max_invoices_per_month. Solo aplica al submit (docstatus 1); el conteo
// cubre el mes calendario de now, primer y último día inclusive.
func (e *Enforcer) CheckInvoiceLimit(ctx context.Context, inv *entity.Invoice, now time.Time) error {
	if inv.DocStatus != entity.DocStatusSubmitted {
		return nil
	}

	limits, err := e.store.Get(ctx)
	if err != nil {
		return err
	}
	if limits.MaxInvoicesPerMonth == 0 {
		return nil
	}

	from := firstOfMonth(now)
	to := lastOfMonth(now)
	current, err := e.invoices.CountSubmittedBetween(ctx, from, to, inv.ID)
	if err != nil {
		return fmt.Errorf("count invoices: %w", err)
	}
	if current >= limits.MaxInvoicesPerMonth {
		return &domain.LimitExceededError{
			Resource: "invoices",
			Limit:    limits.MaxInvoicesPerMonth,
			Current:  current,
			Title:    "Límite mensual de facturas alcanzado",
			Message:  fmt.Sprintf("Alcanzaste el número máximo de facturas (%d) permitido por mes en tu plan. Actualiza tu plan para crear más facturas.", limits.MaxInvoicesPerMonth),
		}
	}
	return nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func lastOfMonth(t time.Time) time.Time {
	return firstOfMonth(t).AddDate(0, 1, -1)
}
