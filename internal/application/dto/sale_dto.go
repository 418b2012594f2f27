package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta: producto y cantidad. El precio se toma del producto.
type SaleLineRequest struct {
	ProductID string `json:"id_producto" validate:"required,uuid"`
	Quantity  int    `json:"cantidad" validate:"required,gt=0"`
}

// CreateSaleRequest body para POST /api/ventas.
type CreateSaleRequest struct {
	CustomerID    string            `json:"id_cliente,omitempty" validate:"omitempty,uuid"`
	PaymentMethod string            `json:"metodo_pago" validate:"required,oneof=EFECTIVO TARJETA TRANSFERENCIA OTRO"`
	Discount      decimal.Decimal   `json:"descuento"`
	Notes         string            `json:"observaciones,omitempty" validate:"max=500"`
	Lines         []SaleLineRequest `json:"productos" validate:"required,min=1,dive"`
}

// VoidSaleRequest body opcional para PATCH /api/ventas/:id/anular.
type VoidSaleRequest struct {
	Reason string `json:"motivo" validate:"max=300"`
}

// SaleDetailResponse línea de venta en respuestas.
type SaleDetailResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"id_producto"`
	ProductName string          `json:"producto,omitempty"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta completa con su detalle.
type SaleResponse struct {
	ID            string               `json:"id"`
	CompanyID     string               `json:"id_empresa"`
	UserID        string               `json:"id_usuario"`
	CustomerID    string               `json:"id_cliente,omitempty"`
	Number        string               `json:"numero"`
	PaymentMethod string               `json:"metodo_pago"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Discount      decimal.Decimal      `json:"descuento"`
	Total         decimal.Decimal      `json:"total"`
	Status        string               `json:"estado"`
	Notes         string               `json:"observaciones,omitempty"`
	VoidReason    string               `json:"motivo_anulacion,omitempty"`
	VoidedAt      *time.Time           `json:"fecha_anulacion,omitempty"`
	CreatedAt     time.Time            `json:"fecha"`
	Details       []SaleDetailResponse `json:"detalles"`
}

// SaleListResponse lista paginada de ventas (sin detalle).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DocumentListQuery filtros de listado de ventas y compras.
type DocumentListQuery struct {
	PageRequest
	Status string `query:"estado"`
	From   string `query:"desde"` // YYYY-MM-DD
	To     string `query:"hasta"` // YYYY-MM-DD
}
