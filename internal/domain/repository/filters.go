package repository

import "time"

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	CompanyID    string
	Search       string // coincide con código o nombre (ILIKE)
	CategoryID   string
	LowStockOnly bool
	ActiveOnly   bool
	Limit        int
	Offset       int
}

// DocumentFilter criterios de listado de ventas y compras.
type DocumentFilter struct {
	CompanyID string
	Status    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
