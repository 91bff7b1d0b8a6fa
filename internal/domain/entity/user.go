package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleBodeguero   = "bodeguero"
	RoleSolicitante = "solicitante"
)

// Estados de un usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User empleado que solicita o administra envíos internos (pertenece a una empresa).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero, solicitante
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
