package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, category_id, code, name, description, purchase_price, sale_price, stock, min_stock, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := row.Scan(&p.ID, &p.CompanyID, &categoryID, &p.Code, &p.Name, &p.Description,
		&p.PurchasePrice, &p.SalePrice, &p.Stock, &p.MinStock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	return &p, nil
}

// Create persiste un nuevo producto. El código es único por empresa.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, nullable(p.CategoryID), p.Code, p.Name, p.Description,
		p.PurchasePrice, p.SalePrice, p.Stock, p.MinStock, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate lee el producto con SELECT ... FOR UPDATE. Solo tiene sentido dentro de una tx:
// el lock de fila serializa ventas y recepciones concurrentes sobre el mismo producto.
func (r *ProductRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND company_id = $2 FOR UPDATE`, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza datos de catálogo. No toca stock (solo lo mueven ventas y compras).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET category_id = $2, name = $3, description = $4, purchase_price = $5, sale_price = $6,
			min_stock = $7, active = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, nullable(p.CategoryID), p.Name, p.Description, p.PurchasePrice, p.SalePrice, p.MinStock, p.Active, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock suma delta al stock y devuelve el nuevo valor. Nunca deja stock negativo.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	var stock int
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock`, id, delta).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
				return 0, fmt.Errorf("check product: %w", err)
			}
			if !exists {
				return 0, domain.ErrNotFound
			}
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return stock, nil
}

// UpdatePurchasePrice actualiza el costo (promedio ponderado tras recibir una compra).
func (r *ProductRepo) UpdatePurchasePrice(ctx context.Context, id string, price decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET purchase_price = $2, updated_at = now() WHERE id = $1`, id, price)
	if err != nil {
		return fmt.Errorf("update purchase price: %w", err)
	}
	return nil
}

// List lista productos de una empresa aplicando filtros de búsqueda.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var w whereBuilder
	w.add("company_id = $%d", f.CompanyID)
	if f.Search != "" {
		w.add("(code ILIKE $%[1]d OR name ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if f.CategoryID != "" {
		w.add("category_id = $%d", f.CategoryID)
	}
	if f.LowStockOnly {
		w.addRaw("stock <= min_stock")
	}
	if f.ActiveOnly {
		w.addRaw("active")
	}
	query := `SELECT ` + productColumns + ` FROM products` + w.sql() + ` ORDER BY name` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// HasDocuments indica si el producto figura en alguna venta o compra.
func (r *ProductRepo) HasDocuments(ctx context.Context, id string) (bool, error) {
	var used bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM sale_details WHERE product_id = $1)
		    OR EXISTS(SELECT 1 FROM purchase_details WHERE product_id = $1)`, id).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("product documents: %w", err)
	}
	return used, nil
}

// Delete elimina un producto sin documentos.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "products", id)
}
