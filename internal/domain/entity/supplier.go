package entity

import "time"

// Supplier representa un proveedor de la empresa (compras).
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	RUC       string
	Contact   string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
