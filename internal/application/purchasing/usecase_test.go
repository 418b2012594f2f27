package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/notification"
	"github.com/jhoicas/Ventas-api/internal/application/purchasing"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/testutil/memstore"
)

var admin = policy.Actor{UserID: "adm", CompanyID: "c1", Role: entity.RoleAdmin}

func setup(t *testing.T) (*memstore.Store, *purchasing.PurchaseUseCase) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: "s1", CompanyID: "c1", Name: "Distribuidora Norte"}))
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: "s2", CompanyID: "c2", Name: "Otra"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p1", CompanyID: "c1", Code: "A1", Name: "Arroz", Active: true,
		Stock: 10, MinStock: 5, PurchasePrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(15),
	}))
	uc := purchasing.NewPurchaseUseCase(store.TxRunner(), store.Purchases(), store.Suppliers(), notification.NewNotifier(), nil)
	return store, uc
}

func order(qty int, price string) dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Lines:      []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: qty, UnitPrice: decimal.RequireFromString(price)}},
	}
}

func TestCreate_PendingWithoutStockChange(t *testing.T) {
	store, uc := setup(t)

	resp, err := uc.Create(context.Background(), admin, order(5, "20"))
	require.NoError(t, err)

	assert.Equal(t, "C-000001", resp.Number)
	assert.Equal(t, entity.PurchaseStatusPending, resp.Status)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 10, store.Product("p1").Stock, "crear no mueve stock")

	notifs := store.NotificationsOf("c1")
	require.Len(t, notifs, 1)
	assert.Equal(t, entity.NotificationPurchase, notifs[0].Type)
}

func TestCreate_DefaultsUnitPriceToPurchasePrice(t *testing.T) {
	_, uc := setup(t)

	resp, err := uc.Create(context.Background(), admin, order(3, "0"))
	require.NoError(t, err)
	require.Len(t, resp.Details, 1)
	assert.True(t, resp.Details[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(30)))
}

func TestCreate_Rejections(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, dto.CreatePurchaseRequest{SupplierID: "s1"})
	assert.ErrorIs(t, err, domain.ErrEmptyLines)

	req := order(1, "1")
	req.SupplierID = "s2"
	_, err = uc.Create(ctx, admin, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor de otra empresa")

	req = order(1, "-1")
	_, err = uc.Create(ctx, admin, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = order(1, "1")
	req.Lines[0].ProductID = "nope"
	_, err = uc.Create(ctx, admin, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_IncrementsStockAndAveragesCost(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, admin, order(10, "20"))
	require.NoError(t, err)

	received, err := uc.Receive(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, received.Status)
	require.NotNil(t, received.ReceivedAt)

	p := store.Product("p1")
	assert.Equal(t, 20, p.Stock)
	// (10*10 + 10*20) / 20 = 15
	assert.True(t, p.PurchasePrice.Equal(decimal.NewFromInt(15)), "costo promedio: %s", p.PurchasePrice)
}

func TestCreate_SubtotalRoundedToCents(t *testing.T) {
	_, uc := setup(t)

	req := order(3, "6.4567")
	req.Lines = append(req.Lines, dto.PurchaseLineRequest{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("0.005")})
	resp, err := uc.Create(context.Background(), admin, req)
	require.NoError(t, err)
	require.Len(t, resp.Details, 2)

	// 3 * 6.4567 = 19.3701; el precio unitario conserva 4 decimales
	assert.Equal(t, "19.37", resp.Details[0].Subtotal.String())
	assert.Equal(t, "6.4567", resp.Details[0].UnitPrice.String())
	assert.Equal(t, "0.01", resp.Details[1].Subtotal.String())
	assert.True(t, resp.Total.Equal(resp.Details[0].Subtotal.Add(resp.Details[1].Subtotal)), "total %s", resp.Total)
}

func TestReceive_AdjustsInProductOrder(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p0", CompanyID: "c1", Code: "A0", Name: "Azúcar", Active: true, PurchasePrice: decimal.NewFromInt(2),
	}))

	created, err := uc.Create(ctx, admin, dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: "p0", Quantity: 4, UnitPrice: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	_, err = uc.Receive(ctx, admin, created.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"p0", "p1"}, store.StockAdjustments())
	assert.Equal(t, 4, store.Product("p0").Stock)
	assert.Equal(t, 12, store.Product("p1").Stock)
}

func TestStateMachine(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		second  string
		wantErr error
	}{
		{"recibir dos veces", "recibir", "recibir", domain.ErrInvalidTransition},
		{"anular recibida", "recibir", "anular", domain.ErrInvalidTransition},
		{"recibir anulada", "anular", "recibir", domain.ErrInvalidTransition},
		{"anular dos veces", "anular", "anular", domain.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, uc := setup(t)
			ctx := context.Background()
			created, err := uc.Create(ctx, admin, order(4, "10"))
			require.NoError(t, err)

			do := func(action string) error {
				var err error
				if action == "recibir" {
					_, err = uc.Receive(ctx, admin, created.ID)
				} else {
					_, err = uc.Void(ctx, admin, created.ID)
				}
				return err
			}
			require.NoError(t, do(tt.first))
			stockAfterFirst := store.Product("p1").Stock

			require.ErrorIs(t, do(tt.second), tt.wantErr)
			assert.Equal(t, stockAfterFirst, store.Product("p1").Stock)
		})
	}
}

func TestVoid_PendingNeverTouchesStock(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, admin, order(50, "10"))
	require.NoError(t, err)

	voided, err := uc.Void(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusVoided, voided.Status)
	assert.Equal(t, 10, store.Product("p1").Stock)
}

func TestReceive_OtherTenantIsNotFound(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, admin, order(5, "10"))
	require.NoError(t, err)

	other := policy.Actor{UserID: "x", CompanyID: "c2", Role: entity.RoleAdmin}
	_, err = uc.Receive(ctx, other, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, store.Product("p1").Stock)

	super := policy.Actor{UserID: "root", Role: entity.RoleSuperuser}
	_, err = uc.Receive(ctx, super, created.ID)
	require.NoError(t, err, "SUPERUSER opera sobre cualquier empresa")
}
