package entity

import "time"

// Tipos de notificación.
const (
	NotificationLowStock   = "STOCK_BAJO"
	NotificationOutOfStock = "STOCK_AGOTADO"
	NotificationSale       = "VENTA"
	NotificationPurchase   = "COMPRA"
)

// Notification es un aviso append-only de la empresa. Nunca modifica productos ni documentos.
type Notification struct {
	ID        string
	CompanyID string
	Type      string
	Message   string
	ProductID string // vacío si no aplica
	Read      bool
	CreatedAt time.Time
}
