package sales

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Stock, cabecera, detalle, avisos y correlativo se confirman o se descartan juntos.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		notificationRepo repository.NotificationRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// Metrics contadores de negocio; se registran solo después del commit.
type Metrics interface {
	SaleCreated(total decimal.Decimal)
	SaleVoided()
	StockAlert(kind string)
}

type nopMetrics struct{}

func (nopMetrics) SaleCreated(decimal.Decimal) {}
func (nopMetrics) SaleVoided()                 {}
func (nopMetrics) StockAlert(string)           {}
