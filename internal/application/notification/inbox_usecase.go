package notification

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// InboxUseCase lectura y marcado de notificaciones de la empresa.
type InboxUseCase struct {
	repo repository.NotificationRepository
}

// NewInboxUseCase construye el caso de uso.
func NewInboxUseCase(repo repository.NotificationRepository) *InboxUseCase {
	return &InboxUseCase{repo: repo}
}

// List devuelve las notificaciones de la empresa (opcionalmente solo no leídas) con el total pendiente.
func (uc *InboxUseCase) List(ctx context.Context, actor policy.Actor, onlyUnread bool, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, onlyUnread, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, toNotificationResponse(n))
	}
	return &dto.NotificationListResponse{
		Items:  items,
		Unread: unread,
		Page:   dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CountUnread cantidad de notificaciones sin leer.
func (uc *InboxUseCase) CountUnread(ctx context.Context, actor policy.Actor) (int, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return 0, err
	}
	return uc.repo.CountUnread(ctx, companyID)
}

// MarkRead marca una notificación como leída. Una notificación de otra empresa se reporta como inexistente.
func (uc *InboxUseCase) MarkRead(ctx context.Context, actor policy.Actor, id string) error {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil || !policy.CanAccess(actor, n.CompanyID) {
		return domain.ErrNotFound
	}
	if n.Read {
		return nil
	}
	return uc.repo.MarkRead(ctx, id)
}

// MarkAllRead marca todas como leídas y devuelve cuántas cambiaron.
func (uc *InboxUseCase) MarkAllRead(ctx context.Context, actor policy.Actor) (int64, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return 0, err
	}
	return uc.repo.MarkAllRead(ctx, companyID)
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		ProductID: n.ProductID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
