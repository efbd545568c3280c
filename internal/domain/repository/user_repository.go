package repository

import (
	"context"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create persiste el usuario junto con sus roles; con un repo atado a una
// transacción (vía TxRunner) la inserción es atómica.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	AddRole(ctx context.Context, userID, role string) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// CountActiveSystemUsers cuenta usuarios habilitados de tipo System User,
	// excluyendo los emails dados (Administrator, Guest y el propio documento).
	CountActiveSystemUsers(ctx context.Context, excludeEmails ...string) (int, error)
}
