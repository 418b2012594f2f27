package entity

import "time"

// Estados de una empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// Company representa una organización/tenant del sistema (multi-tenant).
// Slug identifica a la empresa en el portal público.
type Company struct {
	ID        string
	Name      string
	RUC       string
	Slug      string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la empresa puede operar y publicar su portal.
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}
