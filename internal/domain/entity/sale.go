package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "COMPLETADA"
	SaleStatusVoided    = "ANULADA"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "EFECTIVO"
	PaymentCard     = "TARJETA"
	PaymentTransfer = "TRANSFERENCIA"
	PaymentOther    = "OTRO"
)

// ValidPaymentMethod indica si m es un método de pago conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta.
type Sale struct {
	ID            string
	CompanyID     string
	UserID        string
	CustomerID    string // vacío = venta sin cliente
	Number        string // V-000001
	PaymentMethod string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	Status        string
	Notes         string
	VoidReason    string
	VoidedBy      string
	VoidedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleDetail es la línea inmutable de una venta (snapshot del precio al momento de vender).
type SaleDetail struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // solo lectura, se completa en consultas
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// CanVoid indica si la venta puede anularse.
func (s *Sale) CanVoid() bool {
	return s.Status == SaleStatusCompleted
}
