package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/application/limits"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

// CreateUserService crea o actualiza el usuario inicial del tenant. Sobre un
// usuario existente solo renueva la contraseña, lo habilita y le asegura el
// rol System Manager; sobre uno nuevo inserta el usuario con sus roles en una
// sola transacción.
type CreateUserService struct {
	tx       TxRunner
	users    repository.UserRepository
	enforcer *limits.Enforcer
	log      zerolog.Logger
}

// NewCreateUserService construye el servicio.
func NewCreateUserService(tx TxRunner, users repository.UserRepository, enforcer *limits.Enforcer, log zerolog.Logger) *CreateUserService {
	return &CreateUserService{tx: tx, users: users, enforcer: enforcer, log: log}
}

// ExecuteEncoded descodifica el config_b64 y ejecuta la operación. Nunca
// devuelve error: cualquier fallo se convierte en el resultado
// {success, message} que espera el controlador SaaS.
func (s *CreateUserService) ExecuteEncoded(ctx context.Context, configB64 string) dto.ProvisionResult {
	var cfg dto.CreateUserConfig
	if err := decodeConfig(configB64, &cfg); err != nil {
		s.log.Error().Err(err).Msg("Configuración de usuario ilegible")
		return dto.ProvisionResult{Success: false, Message: err.Error()}
	}
	message, err := s.Execute(ctx, cfg)
	if err != nil {
		s.log.Error().Err(err).Str("email", cfg.Email).Msg("Alta de usuario falló")
		return dto.ProvisionResult{Success: false, Message: err.Error()}
	}
	return dto.ProvisionResult{Success: true, Message: message}
}

// Execute crea o actualiza el usuario con la configuración ya descodificada y
// devuelve el mensaje de resultado.
func (s *CreateUserService) Execute(ctx context.Context, cfg dto.CreateUserConfig) (string, error) {
	if cfg.Email == "" {
		return "", fmt.Errorf("missing required config key: email")
	}
	if cfg.Password == "" {
		return "", fmt.Errorf("missing required config key: password")
	}
	if cfg.FirstName == "" {
		cfg.FirstName = "User"
	}

	s.log.Info().Str("email", cfg.Email).Msg("Creando o actualizando usuario del tenant")

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	existing, err := s.users.GetByEmail(ctx, cfg.Email)
	if err != nil {
		return "", err
	}

	if existing != nil {
		return s.updateExisting(ctx, existing, string(hash))
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        cfg.Email,
		FirstName:    cfg.FirstName,
		LastName:     cfg.LastName,
		PasswordHash: string(hash),
		Enabled:      true,
		UserType:     entity.UserTypeSystem,
		Roles:        []string{entity.RoleSystemManager},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.enforcer.CheckUserLimit(ctx, user); err != nil {
		return "", err
	}
	err = s.tx.RunUsers(ctx, func(users repository.UserRepository) error {
		return users.Create(ctx, user)
	})
	if err != nil {
		return "", err
	}
	s.log.Info().Str("email", cfg.Email).Msg("Usuario creado")

	// La contraseña de Administrator se alinea con la del usuario inicial
	// para el acceso de soporte; un fallo aquí no invalida el alta.
	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err == nil {
		err = s.users.UpdatePassword(ctx, entity.UserAdministrator, string(adminHash))
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("No se pudo actualizar la contraseña de Administrator")
	} else {
		s.log.Info().Msg("Contraseña de Administrator actualizada")
	}

	return fmt.Sprintf("User %s created/updated", cfg.Email), nil
}

// updateExisting renueva la contraseña del usuario, lo habilita y le asegura
// el rol System Manager.
func (s *CreateUserService) updateExisting(ctx context.Context, user *entity.User, hash string) (string, error) {
	if err := s.users.UpdatePassword(ctx, user.Email, hash); err != nil {
		return "", err
	}

	user.Enabled = true
	if err := s.enforcer.CheckUserLimit(ctx, user); err != nil {
		return "", err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	if !user.HasRole(entity.RoleSystemManager) {
		if err := s.users.AddRole(ctx, user.ID, entity.RoleSystemManager); err != nil {
			return "", err
		}
	}
	s.log.Info().Str("email", user.Email).Msg("Usuario existente actualizado")
	return fmt.Sprintf("User %s updated", user.Email), nil
}
