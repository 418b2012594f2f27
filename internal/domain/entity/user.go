package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperuser = "SUPERUSER"
	RoleAdmin     = "ADMIN"
	RoleVendedor  = "VENDEDOR"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperuser, RoleAdmin, RoleVendedor:
		return true
	}
	return false
}
