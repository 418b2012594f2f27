package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra: PENDIENTE → RECIBIDA | ANULADA. RECIBIDA y ANULADA son terminales.
const (
	PurchaseStatusPending  = "PENDIENTE"
	PurchaseStatusReceived = "RECIBIDA"
	PurchaseStatusVoided   = "ANULADA"
)

// PurchaseCanTransition indica si la compra puede pasar de from a to.
func PurchaseCanTransition(from, to string) bool {
	if from != PurchaseStatusPending {
		return false
	}
	return to == PurchaseStatusReceived || to == PurchaseStatusVoided
}

// Purchase representa la cabecera de una orden de compra a un proveedor.
// El stock solo se incrementa al pasar a RECIBIDA.
type Purchase struct {
	ID         string
	CompanyID  string
	UserID     string
	SupplierID string
	Number     string // C-000001
	Total      decimal.Decimal
	Status     string
	Notes      string
	ReceivedAt *time.Time
	VoidedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseDetail es la línea inmutable de una compra.
type PurchaseDetail struct {
	ID          string
	PurchaseID  string
	ProductID   string
	ProductName string // solo lectura, se completa en consultas
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
