package provisioning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

func validUserConfig() dto.CreateUserConfig {
	return dto.CreateUserConfig{
		Email:     "dueno@acme.co",
		FirstName: "María",
		LastName:  "Gómez",
		Password:  "claveFuerte123",
	}
}

// ─────────────────────────────────────────────
// Alta de usuario nuevo
// ─────────────────────────────────────────────

func TestCreateUser_UsuarioNuevo(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	f.seedAdministrator()

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, validUserConfig()))
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "User dueno@acme.co created/updated", result.Message)

	user := f.users.byEmail["dueno@acme.co"]
	require.NotNil(t, user)
	assert.True(t, user.Enabled)
	assert.Equal(t, entity.UserTypeSystem, user.UserType)
	assert.True(t, user.HasRole(entity.RoleSystemManager))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("claveFuerte123")))

	// La contraseña de Administrator se alinea con la del usuario inicial.
	assert.Equal(t, 1, f.users.pwUpdates[entity.UserAdministrator])
	admin := f.users.byEmail[entity.UserAdministrator]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("claveFuerte123")))
}

func TestCreateUser_NombrePorDefecto(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	f.seedAdministrator()
	cfg := validUserConfig()
	cfg.FirstName = ""
	cfg.LastName = ""

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.True(t, result.Success, result.Message)

	user := f.users.byEmail["dueno@acme.co"]
	require.NotNil(t, user)
	assert.Equal(t, "User", user.FirstName)
	assert.Empty(t, user.LastName)
}

func TestCreateUser_FalloDeAdministratorNoInvalida(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	// Administrator no existe en este sitio: la actualización de su
	// contraseña falla pero el alta sigue siendo exitosa.

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, validUserConfig()))
	require.True(t, result.Success, result.Message)
	assert.NotNil(t, f.users.byEmail["dueno@acme.co"])
}

// ─────────────────────────────────────────────
// Usuario existente
// ─────────────────────────────────────────────

func TestCreateUser_UsuarioExistente(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	f.seedAdministrator()
	f.users.byEmail["dueno@acme.co"] = &entity.User{
		ID:           "user-1",
		Email:        "dueno@acme.co",
		FirstName:    "María",
		PasswordHash: "hash-viejo",
		Enabled:      false,
		UserType:     entity.UserTypeSystem,
	}

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, validUserConfig()))
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "User dueno@acme.co updated", result.Message)

	user := f.users.byEmail["dueno@acme.co"]
	assert.True(t, user.Enabled, "el usuario existente debe quedar habilitado")
	assert.True(t, user.HasRole(entity.RoleSystemManager))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("claveFuerte123")))

	// Sobre un usuario existente la contraseña de Administrator no se toca.
	assert.Zero(t, f.users.pwUpdates[entity.UserAdministrator])
}

func TestCreateUser_ExistenteConservaRolUnico(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	f.users.byEmail["dueno@acme.co"] = &entity.User{
		ID:       "user-1",
		Email:    "dueno@acme.co",
		Enabled:  true,
		UserType: entity.UserTypeSystem,
		Roles:    []string{entity.RoleSystemManager, entity.RoleAccountsUser},
	}

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, validUserConfig()))
	require.True(t, result.Success, result.Message)

	user := f.users.byEmail["dueno@acme.co"]
	assert.Len(t, user.Roles, 2, "no debe duplicar System Manager ni borrar otros roles")
}

func TestCreateUser_SobreAdministrator(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	f.seedAdministrator()
	cfg := validUserConfig()
	cfg.Email = entity.UserAdministrator

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.True(t, result.Success, result.Message)
	assert.Equal(t, "User Administrator updated", result.Message)
	assert.Equal(t, 1, f.users.pwUpdates[entity.UserAdministrator])
}

// ─────────────────────────────────────────────
// Validación y límites
// ─────────────────────────────────────────────

func TestCreateUser_FaltaEmail(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	cfg := validUserConfig()
	cfg.Email = ""

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.False(t, result.Success)
	assert.Equal(t, "missing required config key: email", result.Message)
}

func TestCreateUser_FaltaPassword(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})
	cfg := validUserConfig()
	cfg.Password = ""

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, cfg))
	require.False(t, result.Success)
	assert.Equal(t, "missing required config key: password", result.Message)
}

func TestCreateUser_ConfigB64Ilegible(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{})

	result := f.userService().ExecuteEncoded(context.Background(), "%%%")
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "decode config_b64")
}

func TestCreateUser_LimiteDeUsuarios(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{MaxUsers: 1})
	f.seedAdministrator()
	f.users.byEmail["otro@acme.co"] = &entity.User{
		ID:       "user-9",
		Email:    "otro@acme.co",
		Enabled:  true,
		UserType: entity.UserTypeSystem,
	}

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, validUserConfig()))
	require.False(t, result.Success)
	assert.Contains(t, result.Message, "número máximo de usuarios")
	assert.Nil(t, f.users.byEmail["dueno@acme.co"], "el usuario no debe insertarse sobre el límite")
}

func TestCreateUser_AdministratorNoCuentaParaElLimite(t *testing.T) {
	f := newFixture(t, entity.PlanLimits{MaxUsers: 1})
	f.seedAdministrator()

	result := f.userService().ExecuteEncoded(context.Background(), encodeConfig(t, validUserConfig()))
	require.True(t, result.Success, "Administrator no debe contar contra max_users")
}
