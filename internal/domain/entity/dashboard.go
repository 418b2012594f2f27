package entity

import "github.com/shopspring/decimal"

// TopProduct resume las unidades e ingresos de un producto en un período.
type TopProduct struct {
	ProductID string
	Code      string
	Name      string
	Units     int
	Revenue   decimal.Decimal
}
