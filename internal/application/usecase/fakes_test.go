package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Provisor-api/internal/application/limits"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso. Implementan los puertos de
// repositorio y los contadores que consume el enforcer de límites.
// ─────────────────────────────────────────────────────────────────────────────

type memCustomerRepo struct {
	byID map[string]*entity.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byID: make(map[string]*entity.Customer)}
}

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.TaxID == taxID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *memCustomerRepo) Count(_ context.Context, excludeID string) (int, error) {
	n := 0
	for id := range r.byID {
		if id != excludeID {
			n++
		}
	}
	return n, nil
}

type memSupplierRepo struct {
	byID map[string]*entity.Supplier
}

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{byID: make(map[string]*entity.Supplier)}
}

func (r *memSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSupplierRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Supplier, error) {
	for _, s := range r.byID {
		if s.TaxID == taxID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSupplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(r.byID))
	for _, s := range r.byID {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *memSupplierRepo) Count(_ context.Context, excludeID string) (int, error) {
	n := 0
	for id := range r.byID {
		if id != excludeID {
			n++
		}
	}
	return n, nil
}

type memCompanyRepo struct {
	byID map[string]*entity.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{byID: make(map[string]*entity.Company)}
}

func (r *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCompanyRepo) GetByName(_ context.Context, name string) (*entity.Company, error) {
	for _, c := range r.byID {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r *memCompanyRepo) Count(_ context.Context, excludeID string) (int, error) {
	n := 0
	for id := range r.byID {
		if id != excludeID {
			n++
		}
	}
	return n, nil
}

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, email, hash string) error {
	if u, ok := r.byEmail[email]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *memUserRepo) AddRole(_ context.Context, userID, role string) error {
	for _, u := range r.byEmail {
		if u.ID == userID {
			u.Roles = append(u.Roles, role)
		}
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}

func (r *memUserRepo) CountActiveSystemUsers(_ context.Context, excludeEmails ...string) (int, error) {
	excluded := make(map[string]bool, len(excludeEmails))
	for _, e := range excludeEmails {
		excluded[e] = true
	}
	n := 0
	for _, u := range r.byEmail {
		if u.Enabled && u.UserType == entity.UserTypeSystem && !excluded[u.Email] {
			n++
		}
	}
	return n, nil
}

type memInvoiceRepo struct {
	byID map[string]*entity.Invoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{byID: make(map[string]*entity.Invoice)}
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) UpdateDocStatus(_ context.Context, id string, docStatus int) error {
	inv, ok := r.byID[id]
	if !ok {
		return nil
	}
	inv.DocStatus = docStatus
	return nil
}

func (r *memInvoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *memInvoiceRepo) CountSubmittedBetween(_ context.Context, from, to time.Time, excludeID string) (int, error) {
	n := 0
	for id, inv := range r.byID {
		if id == excludeID || inv.DocStatus != entity.DocStatusSubmitted {
			continue
		}
		if inv.PostingDate.Before(from) || inv.PostingDate.After(to) {
			continue
		}
		n++
	}
	return n, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ─────────────────────────────────────────────────────────────────────────────
// Enforcer real sobre un store con límites fijos
// ─────────────────────────────────────────────────────────────────────────────

type stubLimitsCache struct {
	limits entity.PlanLimits
}

func (c *stubLimitsCache) GetJSON(_ context.Context, _ string, dest any) (bool, error) {
	*dest.(*entity.PlanLimits) = c.limits
	return true, nil
}

func (c *stubLimitsCache) SetJSON(_ context.Context, _ string, _ any) error { return nil }

type stubLimitsFile struct{}

func (stubLimitsFile) PlanLimits() (entity.PlanLimits, bool, error) {
	return entity.PlanLimits{}, false, nil
}

func (stubLimitsFile) SetPlanLimits(entity.PlanLimits) error { return nil }

// fixture agrupa los repos en memoria y un enforcer real con el plan dado.
type fixture struct {
	customers *memCustomerRepo
	suppliers *memSupplierRepo
	companies *memCompanyRepo
	users     *memUserRepo
	invoices  *memInvoiceRepo
	enforcer  *limits.Enforcer
}

func newFixture(plan entity.PlanLimits) *fixture {
	f := &fixture{
		customers: newMemCustomerRepo(),
		suppliers: newMemSupplierRepo(),
		companies: newMemCompanyRepo(),
		users:     newMemUserRepo(),
		invoices:  newMemInvoiceRepo(),
	}
	store := limits.NewStore(&stubLimitsCache{limits: plan}, stubLimitsFile{}, zerolog.Nop())
	f.enforcer = limits.NewEnforcer(store, f.users, f.customers, f.suppliers, f.companies, f.invoices)
	return f
}
