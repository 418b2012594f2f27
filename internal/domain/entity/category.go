package entity

import "time"

// Category agrupa productos dentro de una empresa.
type Category struct {
	ID          string
	CompanyID   string
	Name        string // único por empresa
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
