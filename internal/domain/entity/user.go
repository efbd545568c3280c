package entity

import "time"

// Tipos de usuario. Solo los "System User" cuentan contra el límite del plan.
const (
	UserTypeSystem  = "System User"
	UserTypeWebsite = "Website User"
)

// Roles del sistema.
const (
	RoleSystemManager = "System Manager"
	RoleAccountsUser  = "Accounts User"
)

// Usuarios reservados de la plataforma, sembrados por migración. Nunca cuentan
// contra el límite de usuarios ni pueden crearse por API.
const (
	UserAdministrator = "Administrator"
	UserGuest         = "Guest"
)

// User representa un usuario del sitio. El email es la clave natural
// (para los usuarios reservados el email es el nombre literal).
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt, nunca en plano después de persistir
	Enabled      bool
	UserType     string // UserTypeSystem | UserTypeWebsite
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName compone el nombre visible del usuario.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HasRole informa si el usuario tiene el rol dado.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsReserved informa si el email corresponde a un usuario reservado de la plataforma.
func IsReserved(email string) bool {
	return email == UserAdministrator || email == UserGuest
}
