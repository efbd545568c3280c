package provisioning

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Provisor-api/internal/application/limits"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

var (
	errSingleWrite = errors.New("single write rejected")
	errUserMissing = errors.New("user not found")
)

// ─────────────────────────────────────────────
// Repos en memoria
// ─────────────────────────────────────────────

type memCompanyRepo struct {
	byName      map[string]*entity.Company
	dropInserts bool // acepta el insert pero no lo persiste
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{byName: map[string]*entity.Company{}}
}

func (m *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	if m.dropInserts {
		return nil
	}
	m.byName[c.Name] = c
	return nil
}

func (m *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	for _, c := range m.byName {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCompanyRepo) GetByName(_ context.Context, name string) (*entity.Company, error) {
	return m.byName[name], nil
}

func (m *memCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range m.byName {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCompanyRepo) Count(_ context.Context, excludeID string) (int, error) {
	count := 0
	for _, c := range m.byName {
		if excludeID != "" && c.ID == excludeID {
			continue
		}
		count++
	}
	return count, nil
}

type memFiscalYearRepo struct {
	byYear map[string]*entity.FiscalYear
}

func newMemFiscalYearRepo() *memFiscalYearRepo {
	return &memFiscalYearRepo{byYear: map[string]*entity.FiscalYear{}}
}

func (m *memFiscalYearRepo) Create(_ context.Context, fy *entity.FiscalYear) error {
	m.byYear[fy.Year] = fy
	return nil
}

func (m *memFiscalYearRepo) GetByYear(_ context.Context, year string) (*entity.FiscalYear, error) {
	return m.byYear[year], nil
}

func (m *memFiscalYearRepo) List(_ context.Context) ([]*entity.FiscalYear, error) {
	var out []*entity.FiscalYear
	for _, fy := range m.byYear {
		out = append(out, fy)
	}
	return out, nil
}

type memWarehouseTypeRepo struct {
	names map[string]bool
}

func newMemWarehouseTypeRepo() *memWarehouseTypeRepo {
	return &memWarehouseTypeRepo{names: map[string]bool{}}
}

func (m *memWarehouseTypeRepo) Exists(_ context.Context, name string) (bool, error) {
	return m.names[name], nil
}

func (m *memWarehouseTypeRepo) Create(_ context.Context, wt *entity.WarehouseType) error {
	m.names[wt.Name] = true
	return nil
}

func (m *memWarehouseTypeRepo) List(_ context.Context) ([]*entity.WarehouseType, error) {
	var out []*entity.WarehouseType
	for name := range m.names {
		out = append(out, &entity.WarehouseType{Name: name})
	}
	return out, nil
}

type memSettingsRepo struct {
	singles     map[string]string
	defaults    map[string]string
	failDoctype string // los writes a este doctype fallan
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{singles: map[string]string{}, defaults: map[string]string{}}
}

func singleKey(doctype, fieldname string) string {
	return doctype + "." + fieldname
}

func (m *memSettingsRepo) SetSingleValue(_ context.Context, doctype, fieldname, value string) error {
	if m.failDoctype != "" && doctype == m.failDoctype {
		return errSingleWrite
	}
	m.singles[singleKey(doctype, fieldname)] = value
	return nil
}

func (m *memSettingsRepo) GetSingleValue(_ context.Context, doctype, fieldname string) (string, error) {
	return m.singles[singleKey(doctype, fieldname)], nil
}

func (m *memSettingsRepo) SetDefault(_ context.Context, key, value string) error {
	m.defaults[key] = value
	return nil
}

func (m *memSettingsRepo) GetDefault(_ context.Context, key string) (string, error) {
	return m.defaults[key], nil
}

type memInstalledAppRepo struct {
	apps   []*entity.InstalledApp
	marked []string
}

func (m *memInstalledAppRepo) List(_ context.Context) ([]*entity.InstalledApp, error) {
	return m.apps, nil
}

func (m *memInstalledAppRepo) MarkSetupComplete(_ context.Context, appName string) error {
	for _, app := range m.apps {
		if app.AppName == appName {
			app.IsSetupComplete = true
		}
	}
	m.marked = append(m.marked, appName)
	return nil
}

type memUserRepo struct {
	byEmail   map[string]*entity.User
	pwUpdates map[string]int
	pwErr     map[string]error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}, pwUpdates: map[string]int{}, pwErr: map[string]error{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) UpdatePassword(_ context.Context, email, hash string) error {
	if err := m.pwErr[email]; err != nil {
		return err
	}
	u, ok := m.byEmail[email]
	if !ok {
		return errUserMissing
	}
	u.PasswordHash = hash
	m.pwUpdates[email]++
	return nil
}

func (m *memUserRepo) AddRole(_ context.Context, userID, role string) error {
	for _, u := range m.byEmail {
		if u.ID == userID && !u.HasRole(role) {
			u.Roles = append(u.Roles, role)
		}
	}
	return nil
}

func (m *memUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.byEmail {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) CountActiveSystemUsers(_ context.Context, excludeEmails ...string) (int, error) {
	excluded := map[string]bool{}
	for _, e := range excludeEmails {
		excluded[e] = true
	}
	count := 0
	for _, u := range m.byEmail {
		if u.Enabled && u.UserType == entity.UserTypeSystem && !excluded[u.Email] {
			count++
		}
	}
	return count, nil
}

// ─────────────────────────────────────────────
// TxRunner, cache y site config en memoria
// ─────────────────────────────────────────────

type memTxRunner struct {
	companies  *memCompanyRepo
	fiscal     *memFiscalYearRepo
	warehouses *memWarehouseTypeRepo
	settings   *memSettingsRepo
	apps       *memInstalledAppRepo
	users      *memUserRepo
}

func (f *memTxRunner) RunSetup(_ context.Context, fn func(
	repository.CompanyRepository,
	repository.FiscalYearRepository,
	repository.WarehouseTypeRepository,
	repository.SettingsRepository,
	repository.InstalledAppRepository,
) error) error {
	return fn(f.companies, f.fiscal, f.warehouses, f.settings, f.apps)
}

func (f *memTxRunner) RunUsers(_ context.Context, fn func(repository.UserRepository) error) error {
	return fn(f.users)
}

type memSiteCache struct {
	cleared  int
	clearErr error
}

func (m *memSiteCache) Clear(_ context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared++
	return nil
}

type memSiteConfig struct {
	setupComplete bool
	setErr        error
}

func (m *memSiteConfig) SetupComplete() (bool, error) {
	return m.setupComplete, nil
}

func (m *memSiteConfig) SetSetupComplete() error {
	if m.setErr != nil {
		return m.setErr
	}
	m.setupComplete = true
	return nil
}

// ─────────────────────────────────────────────
// Límites en memoria
// ─────────────────────────────────────────────

type memLimitsCache struct {
	data map[string][]byte
}

func (m *memLimitsCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memLimitsCache) SetJSON(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

type memLimitsFile struct {
	limits entity.PlanLimits
	has    bool
}

func (m *memLimitsFile) PlanLimits() (entity.PlanLimits, bool, error) {
	return m.limits, m.has, nil
}

func (m *memLimitsFile) SetPlanLimits(l entity.PlanLimits) error {
	m.limits = l
	m.has = true
	return nil
}

type stubCounter struct{}

func (stubCounter) Count(_ context.Context, _ string) (int, error) {
	return 0, nil
}

type stubInvoiceCounter struct{}

func (stubInvoiceCounter) CountSubmittedBetween(_ context.Context, _, _ time.Time, _ string) (int, error) {
	return 0, nil
}

// ─────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────

type fixture struct {
	tx         *memTxRunner
	companies  *memCompanyRepo
	fiscal     *memFiscalYearRepo
	warehouses *memWarehouseTypeRepo
	settings   *memSettingsRepo
	apps       *memInstalledAppRepo
	users      *memUserRepo
	cache      *memSiteCache
	site       *memSiteConfig
	enforcer   *limits.Enforcer
}

func newFixture(t *testing.T, plan entity.PlanLimits) *fixture {
	t.Helper()
	f := &fixture{
		companies:  newMemCompanyRepo(),
		fiscal:     newMemFiscalYearRepo(),
		warehouses: newMemWarehouseTypeRepo(),
		settings:   newMemSettingsRepo(),
		apps:       &memInstalledAppRepo{apps: []*entity.InstalledApp{{AppName: "core"}, {AppName: "erp"}}},
		users:      newMemUserRepo(),
		cache:      &memSiteCache{},
		site:       &memSiteConfig{},
	}
	f.tx = &memTxRunner{
		companies:  f.companies,
		fiscal:     f.fiscal,
		warehouses: f.warehouses,
		settings:   f.settings,
		apps:       f.apps,
		users:      f.users,
	}
	store := limits.NewStore(
		&memLimitsCache{data: map[string][]byte{}},
		&memLimitsFile{limits: plan, has: !plan.IsZero()},
		zerolog.Nop(),
	)
	f.enforcer = limits.NewEnforcer(store, f.users, stubCounter{}, stubCounter{}, f.companies, stubInvoiceCounter{})
	return f
}

func (f *fixture) setupService() *SetupCompanyService {
	return NewSetupCompanyService(f.tx, f.companies, f.settings, f.enforcer, f.cache, f.site, Defaults{}, zerolog.Nop())
}

func (f *fixture) userService() *CreateUserService {
	return NewCreateUserService(f.tx, f.users, f.enforcer, zerolog.Nop())
}

func (f *fixture) seedAdministrator() {
	f.users.byEmail[entity.UserAdministrator] = &entity.User{
		ID:       "admin-id",
		Email:    entity.UserAdministrator,
		Enabled:  true,
		UserType: entity.UserTypeSystem,
		Roles:    []string{entity.RoleSystemManager},
	}
}

func encodeConfig(t *testing.T, cfg any) string {
	t.Helper()
	raw, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}
