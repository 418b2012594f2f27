package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// SalesTotals suma el total de ventas COMPLETADAS en [from, to). Las anuladas no cuentan.
func (r *AnalyticsRepo) SalesTotals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE company_id = $1 AND status = $2 AND created_at >= $3 AND created_at < $4`,
		companyID, entity.SaleStatusCompleted, from, to).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales totals: %w", err)
	}
	return total, count, nil
}

// PurchaseTotals suma compras RECIBIDAS en [from, to) según fecha de recepción.
func (r *AnalyticsRepo) PurchaseTotals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM purchases
		WHERE company_id = $1 AND status = $2 AND received_at >= $3 AND received_at < $4`,
		companyID, entity.PurchaseStatusReceived, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("purchase totals: %w", err)
	}
	return total, nil
}

// CountLowStock cuenta productos activos en o bajo su stock mínimo.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE company_id = $1 AND active AND stock <= min_stock`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// TopProducts productos con más unidades vendidas en el rango.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]entity.TopProduct, error) {
	const query = `
	SELECT p.id, p.code, p.name, SUM(d.quantity) AS units, SUM(d.subtotal) AS revenue
	FROM sale_details d
	JOIN sales    s ON s.id = d.sale_id
	JOIN products p ON p.id = d.product_id
	WHERE s.company_id = $1
	  AND s.status = $2
	  AND s.created_at >= $3 AND s.created_at < $4
	GROUP BY p.id, p.code, p.name
	ORDER BY units DESC, revenue DESC
	LIMIT $5`

	rows, err := r.pool.Query(ctx, query, companyID, entity.SaleStatusCompleted, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []entity.TopProduct
	for rows.Next() {
		var t entity.TopProduct
		if err := rows.Scan(&t.ProductID, &t.Code, &t.Name, &t.Units, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
