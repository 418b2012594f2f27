package notification_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/notification"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/testutil/memstore"
)

func TestAfterStockDecrease(t *testing.T) {
	tests := []struct {
		name     string
		newStock int
		min      int
		want     string
	}{
		{"sobre el mínimo", 6, 5, ""},
		{"en el mínimo", 5, 5, entity.NotificationLowStock},
		{"bajo el mínimo", 1, 5, entity.NotificationLowStock},
		{"agotado", 0, 5, entity.NotificationOutOfStock},
		{"agotado sin mínimo", 0, 0, entity.NotificationOutOfStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			p := &entity.Product{ID: "p1", CompanyID: "c1", Code: "A1", Name: "Arroz", MinStock: tt.min}

			n, err := notification.NewNotifier().AfterStockDecrease(context.Background(), store.Notifications(), p, tt.newStock)
			require.NoError(t, err)

			got := store.NotificationsOf("c1")
			if tt.want == "" {
				assert.Nil(t, n)
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Type)
			assert.Equal(t, "p1", got[0].ProductID)
			assert.Contains(t, got[0].Message, "Arroz")
		})
	}
}

func TestInbox(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	notifier := notification.NewNotifier()
	for i := 0; i < 3; i++ {
		require.NoError(t, notifier.DocumentCreated(ctx, store.Notifications(), "c1", entity.NotificationSale, "venta"))
	}
	require.NoError(t, notifier.DocumentCreated(ctx, store.Notifications(), "c2", entity.NotificationSale, "otra"))

	inbox := notification.NewInboxUseCase(store.Notifications())
	actor := policy.Actor{UserID: "u1", CompanyID: "c1", Role: entity.RoleVendedor}

	list, err := inbox.List(ctx, actor, false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, 3, list.Unread)

	require.NoError(t, inbox.MarkRead(ctx, actor, list.Items[0].ID))
	require.NoError(t, inbox.MarkRead(ctx, actor, list.Items[0].ID), "marcar dos veces es idempotente")
	unread, err := inbox.CountUnread(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	onlyUnread, err := inbox.List(ctx, actor, true, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, onlyUnread.Items, 2)

	changed, err := inbox.MarkAllRead(ctx, actor)
	require.NoError(t, err)
	assert.EqualValues(t, 2, changed)

	other := policy.Actor{UserID: "u2", CompanyID: "c2", Role: entity.RoleAdmin}
	err = inbox.MarkRead(ctx, other, list.Items[1].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	otherUnread, err := inbox.CountUnread(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 1, otherUnread, "marcar todas no toca otras empresas")
}
