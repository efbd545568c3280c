package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/application/limits"
	"github.com/jhoicas/Provisor-api/internal/domain"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para usuarios del sistema.
type UserUseCase struct {
	repo     repository.UserRepository
	enforcer *limits.Enforcer
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, enforcer *limits.Enforcer) *UserUseCase {
	return &UserUseCase{repo: repo, enforcer: enforcer}
}

// Create crea un System User habilitado. Los emails reservados de la
// plataforma (Administrator, Guest) no pueden crearse por API, y el alta
// valida el límite de usuarios del plan antes de insertar.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if entity.IsReserved(in.Email) {
		return nil, domain.ErrReservedUser
	}
	existing, _ := uc.repo.GetByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{entity.RoleAccountsUser}
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		Enabled:      true,
		UserType:     entity.UserTypeSystem,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.enforcer.CheckUserLimit(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByEmail obtiene un usuario por email.
func (uc *UserUseCase) GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return items, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Enabled:   u.Enabled,
		UserType:  u.UserType,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
