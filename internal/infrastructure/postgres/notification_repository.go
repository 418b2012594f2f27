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

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo bandeja de avisos por empresa.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Acepta pool o tx.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationColumns = `id, company_id, type, message, product_id, read, created_at`

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	var productID *string
	if err := row.Scan(&n.ID, &n.CompanyID, &n.Type, &n.Message, &productID, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.ProductID = deref(productID)
	return &n, nil
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx, `INSERT INTO notifications (`+notificationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.CompanyID, n.Type, n.Message, nullable(n.ProductID), n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := scanNotification(r.q.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// ListByCompany devuelve las notificaciones más recientes primero.
func (r *NotificationRepo) ListByCompany(ctx context.Context, companyID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	var w whereBuilder
	w.add("company_id = $%d", companyID)
	if onlyUnread {
		w.addRaw("NOT read")
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications`+w.sql()+` ORDER BY created_at DESC`+w.page(limit, offset), w.args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *NotificationRepo) CountUnread(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE company_id = $1 AND NOT read`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marca una notificación como leída. Idempotente.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca como leídas todas las pendientes de la empresa y devuelve cuántas cambió.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, companyID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE company_id = $1 AND NOT read`, companyID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return cmd.RowsAffected(), nil
}
