package limits

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

type fakeCache struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	setHits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any) error {
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	f.setHits++
	return nil
}

type fakeFile struct {
	limits  entity.PlanLimits
	has     bool
	readErr error
	setErr  error
}

func (f *fakeFile) PlanLimits() (entity.PlanLimits, bool, error) {
	if f.readErr != nil {
		return entity.PlanLimits{}, false, f.readErr
	}
	return f.limits, f.has, nil
}

func (f *fakeFile) SetPlanLimits(limits entity.PlanLimits) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.limits = limits
	f.has = true
	return nil
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestGet_SinLimitesConfigurados(t *testing.T) {
	store := NewStore(newFakeCache(), &fakeFile{}, zerolog.Nop())

	limits, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, limits.IsZero(), "sin configuración todo es ilimitado")
}

func TestGet_CacheCaliente(t *testing.T) {
	cache := newFakeCache()
	store := NewStore(cache, &fakeFile{}, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, entity.PlanLimits{MaxUsers: 5}))

	limits, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, limits.MaxUsers)
}

func TestGet_CacheFrioLeeArchivoYRepuebla(t *testing.T) {
	cache := newFakeCache()
	file := &fakeFile{limits: entity.PlanLimits{MaxCustomers: 100}, has: true}
	store := NewStore(cache, file, zerolog.Nop())

	limits, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, limits.MaxCustomers)
	assert.Equal(t, 1, cache.setHits, "el archivo debe repoblar el cache")
}

func TestGet_CacheCaidoDegradaAlArchivo(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	file := &fakeFile{limits: entity.PlanLimits{MaxCompanies: 1}, has: true}
	store := NewStore(cache, file, zerolog.Nop())

	limits, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, limits.MaxCompanies, "con Redis caído manda el archivo")
}

func TestGet_ArchivoIlegibleFalla(t *testing.T) {
	file := &fakeFile{readErr: errors.New("permission denied")}
	store := NewStore(newFakeCache(), file, zerolog.Nop())

	_, err := store.Get(context.Background())
	assert.Error(t, err)
}

func TestSet_EscribeCacheYArchivo(t *testing.T) {
	cache := newFakeCache()
	file := &fakeFile{}
	store := NewStore(cache, file, zerolog.Nop())

	limits := entity.PlanLimits{MaxUsers: 3, MaxInvoicesPerMonth: 50}
	require.NoError(t, store.Set(context.Background(), limits))

	assert.Equal(t, 1, cache.setHits)
	assert.True(t, file.has)
	assert.Equal(t, limits, file.limits)
}

func TestSet_FalloDeArchivoNoInterrumpe(t *testing.T) {
	cache := newFakeCache()
	file := &fakeFile{setErr: errors.New("read-only filesystem")}
	store := NewStore(cache, file, zerolog.Nop())

	err := store.Set(context.Background(), entity.PlanLimits{MaxUsers: 3})
	assert.NoError(t, err, "el espejo en archivo es tolerante a fallos")
	assert.Equal(t, 1, cache.setHits)
}

func TestSet_FalloDeCacheSiFalla(t *testing.T) {
	cache := newFakeCache()
	cache.setErr = errors.New("connection refused")
	store := NewStore(cache, &fakeFile{}, zerolog.Nop())

	err := store.Set(context.Background(), entity.PlanLimits{MaxUsers: 3})
	assert.Error(t, err, "sin cache el sync debe reportar fallo al controlador")
}
