package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de compra. UnitPrice cero o ausente toma el precio_compra del producto.
type PurchaseLineRequest struct {
	ProductID string          `json:"id_producto" validate:"required,uuid"`
	Quantity  int             `json:"cantidad" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// CreatePurchaseRequest body para POST /api/compras.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"id_proveedor" validate:"required,uuid"`
	Notes      string                `json:"observaciones,omitempty" validate:"max=500"`
	Lines      []PurchaseLineRequest `json:"productos" validate:"required,min=1,dive"`
}

// PurchaseDetailResponse línea de compra en respuestas.
type PurchaseDetailResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"id_producto"`
	ProductName string          `json:"producto,omitempty"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra completa con su detalle.
type PurchaseResponse struct {
	ID         string                   `json:"id"`
	CompanyID  string                   `json:"id_empresa"`
	UserID     string                   `json:"id_usuario"`
	SupplierID string                   `json:"id_proveedor"`
	Number     string                   `json:"numero"`
	Total      decimal.Decimal          `json:"total"`
	Status     string                   `json:"estado"`
	Notes      string                   `json:"observaciones,omitempty"`
	ReceivedAt *time.Time               `json:"fecha_recepcion,omitempty"`
	VoidedAt   *time.Time               `json:"fecha_anulacion,omitempty"`
	CreatedAt  time.Time                `json:"fecha"`
	Details    []PurchaseDetailResponse `json:"detalles"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
