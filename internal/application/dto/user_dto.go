package dto

import "time"

// CreateUserRequest entrada para crear un usuario del sistema vía API
// (requiere rol System Manager; el password se hashea en el use case).
type CreateUserRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	FirstName string   `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string   `json:"last_name" validate:"omitempty,max=100"`
	Password  string   `json:"password" validate:"required,min=8"`
	Roles     []string `json:"roles"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Enabled   bool      `json:"enabled"`
	UserType  string    `json:"user_type"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
