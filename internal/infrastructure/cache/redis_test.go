package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestClient(t *testing.T) (*miniredis.Miniredis, *Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, &Client{rdb: rdb, log: zerolog.Nop()}
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestGetJSON_ClaveInexistente(t *testing.T) {
	_, c := newTestClient(t)

	var dest map[string]any
	found, err := c.GetJSON(context.Background(), "no-existe", &dest)
	require.NoError(t, err)
	assert.False(t, found, "una clave inexistente no debe reportarse como hit")
}

func TestSetJSON_LuegoGetJSON(t *testing.T) {
	_, c := newTestClient(t)
	ctx := context.Background()

	value := map[string]float64{"max_users": 5, "max_companies": 1}
	require.NoError(t, c.SetJSON(ctx, "saas_plan_limits", value))

	var dest map[string]float64
	found, err := c.GetJSON(ctx, "saas_plan_limits", &dest)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, value, dest)
}

func TestSetJSON_SinExpiracion(t *testing.T) {
	mr, c := newTestClient(t)

	require.NoError(t, c.SetJSON(context.Background(), "clave", "valor"))
	assert.Zero(t, mr.TTL("clave"), "los valores del sitio no deben expirar")
}

func TestGetJSON_ContenidoCorrupto(t *testing.T) {
	mr, c := newTestClient(t)
	require.NoError(t, mr.Set("clave", "esto no es json"))

	var dest map[string]any
	_, err := c.GetJSON(context.Background(), "clave", &dest)
	assert.Error(t, err, "contenido no JSON debe reportar error")
}

func TestDelete_EliminaClave(t *testing.T) {
	_, c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "clave", "valor"))
	require.NoError(t, c.Delete(ctx, "clave"))

	var dest string
	found, err := c.GetJSON(ctx, "clave", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete_ClaveInexistenteNoFalla(t *testing.T) {
	_, c := newTestClient(t)
	assert.NoError(t, c.Delete(context.Background(), "nunca-existio"))
}

func TestClear_VaciaBase(t *testing.T) {
	mr, c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "a", 1))
	require.NoError(t, c.SetJSON(ctx, "b", 2))
	require.NoError(t, c.Clear(ctx))

	assert.Empty(t, mr.Keys(), "FLUSHDB debe dejar la base vacía")
}

func TestPing_RedisCaido(t *testing.T) {
	mr, c := newTestClient(t)

	require.NoError(t, c.Ping(context.Background()))
	mr.Close()
	assert.Error(t, c.Ping(context.Background()), "ping debe fallar con Redis caído")
}
