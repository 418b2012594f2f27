package entity

import "time"

// Customer representa un cliente de la empresa (ventas).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Document  string // DNI o RUC, único por empresa
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
