package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para notificaciones (append-only).
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByCompany(ctx context.Context, companyID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, companyID string) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, companyID string) (int64, error)
}
