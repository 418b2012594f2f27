package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la transacción en curso.
	// Solo devuelve el producto si pertenece a companyID.
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error)
	// Update modifica datos descriptivos y precios; nunca el stock.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta (positivo o negativo) al stock y devuelve el nuevo valor.
	// Devuelve domain.ErrInsufficientStock si el resultado fuera negativo.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	UpdatePurchasePrice(ctx context.Context, id string, price decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// HasDocuments indica si alguna línea de venta o compra referencia al producto.
	HasDocuments(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
