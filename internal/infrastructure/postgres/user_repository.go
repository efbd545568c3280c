package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Provisor-api/internal/domain"
	"github.com/jhoicas/Provisor-api/internal/domain/entity"
	"github.com/jhoicas/Provisor-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Los roles viven en user_roles (tabla hija); Create inserta usuario y roles,
// así que conviene usarlo a través del TxRunner para que sea atómico.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario con sus roles.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name, password_hash, enabled, user_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.Enabled, user.UserType, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	for _, role := range user.Roles {
		if err := r.AddRole(ctx, user.ID, role); err != nil {
			return err
		}
	}
	return nil
}

// GetByEmail obtiene un usuario por email, con sus roles. nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, enabled, user_type, created_at, updated_at
		FROM users WHERE email = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.Enabled, &u.UserType, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	roles, err := r.getRoles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return &u, nil
}

// Update actualiza nombre, enabled y tipo del usuario (no toca password ni roles).
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET first_name = $2, last_name = $3, enabled = $4, user_type = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Enabled, user.UserType, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword cambia el hash de password del usuario con ese email.
// Devuelve domain.ErrUserNotFound si el email no existe.
func (r *UserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE email = $1`,
		email, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddRole otorga un rol al usuario (idempotente).
func (r *UserRepo) AddRole(ctx context.Context, userID, role string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, role,
	)
	if err != nil {
		return fmt.Errorf("add role %s: %w", role, err)
	}
	return nil
}

// List devuelve usuarios con paginación (con roles).
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, enabled, user_type, created_at, updated_at
		FROM users ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
			&u.Enabled, &u.UserType, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, u := range list {
		roles, err := r.getRoles(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		u.Roles = roles
	}
	return list, nil
}

// CountActiveSystemUsers cuenta usuarios habilitados de tipo System User,
// excluyendo los emails dados. Es la consulta del validador de cuota.
func (r *UserRepo) CountActiveSystemUsers(ctx context.Context, excludeEmails ...string) (int, error) {
	query := `
		SELECT COUNT(*) FROM users
		 WHERE enabled = true
		   AND user_type = $1
		   AND NOT (email = ANY($2))`
	var count int
	if err := r.q.QueryRow(ctx, query, entity.UserTypeSystem, excludeEmails).Scan(&count); err != nil {
		return 0, fmt.Errorf("count system users: %w", err)
	}
	return count, nil
}

func (r *UserRepo) getRoles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, fmt.Errorf("get roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
