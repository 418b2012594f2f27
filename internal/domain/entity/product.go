package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de una empresa.
// Stock es el contador único de existencias; solo lo modifican ventas y compras.
type Product struct {
	ID            string
	CompanyID     string
	CategoryID    string // vacío si no tiene categoría
	Code          string // único por empresa
	Name          string
	Description   string
	PurchasePrice decimal.Decimal // precio_compra (promedio ponderado tras cada recepción)
	SalePrice     decimal.Decimal // precio_venta
	Stock         int             // stock_actual, nunca negativo
	MinStock      int             // stock_minimo
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
