package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo persistencia de órdenes de compra.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Acepta pool o tx.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, company_id, user_id, supplier_id, number, total, status, notes, received_at, voided_at, created_at, updated_at`

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(&p.ID, &p.CompanyID, &p.UserID, &p.SupplierID, &p.Number, &p.Total, &p.Status, &p.Notes,
		&p.ReceivedAt, &p.VoidedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `INSERT INTO purchases (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.CompanyID, p.UserID, p.SupplierID, p.Number, p.Total, p.Status, p.Notes,
		p.ReceivedAt, p.VoidedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) CreateDetail(ctx context.Context, d *entity.PurchaseDetail) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_details (id, purchase_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.PurchaseID, d.ProductID, d.Quantity, d.UnitPrice, d.Subtotal)
	if err != nil {
		return fmt.Errorf("insert purchase detail: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la compra: dos recepciones simultáneas no pueden sumar stock dos veces.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase for update: %w", err)
	}
	return p, nil
}

func (r *PurchaseRepo) GetDetails(ctx context.Context, purchaseID string) ([]*entity.PurchaseDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.purchase_id, d.product_id, p.name, d.quantity, d.unit_price, d.subtotal
		FROM purchase_details d
		JOIN products p ON p.id = d.product_id
		WHERE d.purchase_id = $1
		ORDER BY p.name`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase details: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseDetail
	for rows.Next() {
		var d entity.PurchaseDetail
		if err := rows.Scan(&d.ID, &d.PurchaseID, &d.ProductID, &d.ProductName, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateStatus persiste estado y fechas de recepción/anulación.
func (r *PurchaseRepo) UpdateStatus(ctx context.Context, p *entity.Purchase) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchases SET status = $2, received_at = $3, voided_at = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.Status, p.ReceivedAt, p.VoidedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Purchase, error) {
	w := documentWhere(f)
	rows, err := r.q.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases`+w.sql()+` ORDER BY created_at DESC`+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
