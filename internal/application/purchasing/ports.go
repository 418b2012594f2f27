package purchasing

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repos de compras.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		notificationRepo repository.NotificationRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// Metrics contador de recepciones; se registra después del commit.
type Metrics interface {
	PurchaseReceived()
}

type nopMetrics struct{}

func (nopMetrics) PurchaseReceived() {}
