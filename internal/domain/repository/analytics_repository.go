package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// AnalyticsRepository consultas de solo lectura para el dashboard.
// Las ventas ANULADAS y las compras no RECIBIDAS quedan fuera de los totales.
type AnalyticsRepository interface {
	SalesTotals(ctx context.Context, companyID string, from, to time.Time) (total decimal.Decimal, count int, err error)
	PurchaseTotals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
	CountLowStock(ctx context.Context, companyID string) (int, error)
	TopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]entity.TopProduct, error)
}
