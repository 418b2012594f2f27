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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persistencia de ventas y su detalle.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Acepta pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, user_id, customer_id, number, payment_method, subtotal, discount, total, status,
	notes, void_reason, voided_by, voided_at, created_at, updated_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID, voidedBy *string
	err := row.Scan(&s.ID, &s.CompanyID, &s.UserID, &customerID, &s.Number, &s.PaymentMethod,
		&s.Subtotal, &s.Discount, &s.Total, &s.Status, &s.Notes, &s.VoidReason, &voidedBy, &s.VoidedAt,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.CustomerID = deref(customerID)
	s.VoidedBy = deref(voidedBy)
	return &s, nil
}

// Create inserta la cabecera. El número es único por empresa.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.CompanyID, s.UserID, nullable(s.CustomerID), s.Number, s.PaymentMethod,
		s.Subtotal, s.Discount, s.Total, s.Status, s.Notes, s.VoidReason, nullable(s.VoidedBy), s.VoidedAt,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateDetail inserta una línea de venta.
func (r *SaleRepo) CreateDetail(ctx context.Context, d *entity.SaleDetail) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_details (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.SaleID, d.ProductID, d.Quantity, d.UnitPrice, d.Subtotal)
	if err != nil {
		return fmt.Errorf("insert sale detail: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetForUpdate bloquea la venta para anularla sin carreras.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale for update: %w", err)
	}
	return s, nil
}

// GetDetails devuelve las líneas con el nombre actual del producto.
func (r *SaleRepo) GetDetails(ctx context.Context, saleID string) ([]*entity.SaleDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.sale_id, d.product_id, p.name, d.quantity, d.unit_price, d.subtotal
		FROM sale_details d
		JOIN products p ON p.id = d.product_id
		WHERE d.sale_id = $1
		ORDER BY p.name`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale details: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.ProductID, &d.ProductName, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// MarkVoided persiste la anulación.
func (r *SaleRepo) MarkVoided(ctx context.Context, s *entity.Sale) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales SET status = $2, void_reason = $3, voided_by = $4, voided_at = $5, updated_at = $6
		WHERE id = $1`,
		s.ID, s.Status, s.VoidReason, nullable(s.VoidedBy), s.VoidedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("void sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cabeceras de venta de la empresa, las más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Sale, error) {
	w := documentWhere(f)
	rows, err := r.q.Query(ctx,
		`SELECT `+saleColumns+` FROM sales`+w.sql()+` ORDER BY created_at DESC`+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func documentWhere(f repository.DocumentFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("company_id = $%d", f.CompanyID)
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at < $%d", *f.To)
	}
	return w
}
