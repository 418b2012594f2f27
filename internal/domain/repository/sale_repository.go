package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateDetail(ctx context.Context, detail *entity.SaleDetail) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera para anulación.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	GetDetails(ctx context.Context, saleID string) ([]*entity.SaleDetail, error)
	// MarkVoided persiste estado ANULADA, motivo, usuario y fecha.
	MarkVoided(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Sale, error)
}

// PurchaseRepository define el puerto de persistencia para compras y sus líneas.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateDetail(ctx context.Context, detail *entity.PurchaseDetail) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	GetDetails(ctx context.Context, purchaseID string) ([]*entity.PurchaseDetail, error)
	// UpdateStatus persiste Status, ReceivedAt y VoidedAt.
	UpdateStatus(ctx context.Context, purchase *entity.Purchase) error
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Purchase, error)
}

// SequenceRepository entrega el siguiente número de documento por empresa y tipo.
// Next debe ser atómico: dos transacciones concurrentes nunca reciben el mismo valor.
type SequenceRepository interface {
	Next(ctx context.Context, companyID, docType string) (int64, error)
}
