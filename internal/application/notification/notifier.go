package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/stock"
)

// Notifier escribe avisos con el repo que recibe; el caller le pasa el repo atado a su tx
// para que el aviso exista si y solo si la mutación de stock se confirmó.
type Notifier struct {
	now func() time.Time
}

// NewNotifier construye el notificador.
func NewNotifier() *Notifier {
	return &Notifier{now: time.Now}
}

// AfterStockDecrease evalúa el nuevo stock del producto y registra a lo sumo un aviso.
// Devuelve nil si el producto sigue por encima del mínimo.
func (n *Notifier) AfterStockDecrease(
	ctx context.Context,
	repo repository.NotificationRepository,
	product *entity.Product,
	newStock int,
) (*entity.Notification, error) {
	kind, ok := stock.Evaluate(newStock, product.MinStock)
	if !ok {
		return nil, nil
	}
	var msg string
	if kind == entity.NotificationOutOfStock {
		msg = fmt.Sprintf("Producto agotado: %s (%s)", product.Name, product.Code)
	} else {
		msg = fmt.Sprintf("Stock bajo: %s (%s) quedó con %d unidades, mínimo %d", product.Name, product.Code, newStock, product.MinStock)
	}
	notif := &entity.Notification{
		ID:        uuid.New().String(),
		CompanyID: product.CompanyID,
		Type:      kind,
		Message:   msg,
		ProductID: product.ID,
		CreatedAt: n.now(),
	}
	if err := repo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("notificación de stock: %w", err)
	}
	return notif, nil
}

// DocumentCreated registra el aviso VENTA o COMPRA de un documento nuevo.
func (n *Notifier) DocumentCreated(ctx context.Context, repo repository.NotificationRepository, companyID, kind, message string) error {
	notif := &entity.Notification{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      kind,
		Message:   message,
		CreatedAt: n.now(),
	}
	if err := repo.Create(ctx, notif); err != nil {
		return fmt.Errorf("notificación de documento: %w", err)
	}
	return nil
}
