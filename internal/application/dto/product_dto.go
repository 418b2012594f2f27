package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock es el stock inicial.
type CreateProductRequest struct {
	CategoryID    string          `json:"id_categoria,omitempty" validate:"omitempty,uuid"`
	Code          string          `json:"codigo" validate:"required,min=1,max=50"`
	Name          string          `json:"nombre" validate:"required,min=1,max=200"`
	Description   string          `json:"descripcion" validate:"max=1000"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	Stock         int             `json:"stock_actual" validate:"min=0"`
	MinStock      int             `json:"stock_minimo" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	CategoryID    *string          `json:"id_categoria" validate:"omitempty,uuid"`
	Name          *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"descripcion" validate:"omitempty,max=1000"`
	PurchasePrice *decimal.Decimal `json:"precio_compra"`
	SalePrice     *decimal.Decimal `json:"precio_venta"`
	MinStock      *int             `json:"stock_minimo" validate:"omitempty,min=0"`
	Active        *bool            `json:"activo"`
}

// ProductListQuery filtros de GET /api/productos.
type ProductListQuery struct {
	PageRequest
	Search     string `query:"q"`
	CategoryID string `query:"categoria" validate:"omitempty,uuid"`
	LowStock   bool   `query:"stock_bajo"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"id_empresa"`
	CategoryID    string          `json:"id_categoria,omitempty"`
	Code          string          `json:"codigo"`
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	Stock         int             `json:"stock_actual"`
	MinStock      int             `json:"stock_minimo"`
	Active        bool            `json:"activo"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
