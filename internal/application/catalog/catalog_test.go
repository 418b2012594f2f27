package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/catalog"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/notification"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/testutil/memstore"
)

type spyCache struct {
	invalidated []string
	err         error
}

func (s *spyCache) Invalidate(_ context.Context, companyID string) error {
	s.invalidated = append(s.invalidated, companyID)
	return s.err
}

func admin(companyID string) policy.Actor {
	return policy.Actor{UserID: "admin-" + companyID, CompanyID: companyID, Role: entity.RoleAdmin}
}

func newProductReq(code string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:          code,
		Name:          "Arroz " + code,
		PurchasePrice: decimal.RequireFromString("3.20"),
		SalePrice:     decimal.RequireFromString("4.50"),
		Stock:         10,
		MinStock:      2,
	}
}

func TestProduct_CreateAndGet(t *testing.T) {
	store := memstore.New()
	cache := &spyCache{}
	uc := catalog.NewProductUseCase(store.Products(), store.Categories(), cache)
	ctx := context.Background()

	resp, err := uc.Create(ctx, admin("c1"), newProductReq("A-1"))
	require.NoError(t, err)
	assert.Equal(t, "c1", resp.CompanyID)
	assert.Equal(t, 10, resp.Stock)
	assert.True(t, resp.Active)
	assert.Equal(t, []string{"c1"}, cache.invalidated)

	got, err := uc.Get(ctx, admin("c1"), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "A-1", got.Code)

	_, err = uc.Get(ctx, admin("c2"), resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_CreateRejections(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		mutate  func(req *dto.CreateProductRequest)
		wantErr error
	}{
		{"código duplicado", func(req *dto.CreateProductRequest) { req.Code = "DUP" }, domain.ErrDuplicate},
		{"precio negativo", func(req *dto.CreateProductRequest) { req.SalePrice = decimal.NewFromInt(-1) }, domain.ErrInvalidInput},
		{"stock negativo", func(req *dto.CreateProductRequest) { req.Stock = -1 }, domain.ErrInvalidInput},
		{"categoría de otra empresa", func(req *dto.CreateProductRequest) { req.CategoryID = "cat-c2" }, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-c2", CompanyID: "c2", Name: "Otra"}))
			uc := catalog.NewProductUseCase(store.Products(), store.Categories(), nil)
			_, err := uc.Create(ctx, admin("c1"), newProductReq("DUP"))
			require.NoError(t, err)

			req := newProductReq("NEW")
			tt.mutate(&req)
			_, err = uc.Create(ctx, admin("c1"), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProduct_SameCodeInOtherTenant(t *testing.T) {
	store := memstore.New()
	uc := catalog.NewProductUseCase(store.Products(), store.Categories(), nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, admin("c1"), newProductReq("X"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin("c2"), newProductReq("X"))
	assert.NoError(t, err)
}

func TestProduct_UpdateNeverTouchesStock(t *testing.T) {
	store := memstore.New()
	uc := catalog.NewProductUseCase(store.Products(), store.Categories(), nil)
	ctx := context.Background()
	created, err := uc.Create(ctx, admin("c1"), newProductReq("A-1"))
	require.NoError(t, err)

	name := "Arroz extra"
	price := decimal.RequireFromString("5.10")
	resp, err := uc.Update(ctx, admin("c1"), created.ID, dto.UpdateProductRequest{Name: &name, SalePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Arroz extra", resp.Name)
	assert.True(t, resp.SalePrice.Equal(price))
	assert.Equal(t, 10, store.Product(created.ID).Stock)

	neg := decimal.NewFromInt(-2)
	_, err = uc.Update(ctx, admin("c1"), created.ID, dto.UpdateProductRequest{PurchasePrice: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_ListFilters(t *testing.T) {
	store := memstore.New()
	uc := catalog.NewProductUseCase(store.Products(), store.Categories(), nil)
	ctx := context.Background()

	low := newProductReq("LOW")
	low.Name = "Azúcar"
	low.Stock = 1
	_, err := uc.Create(ctx, admin("c1"), low)
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin("c1"), newProductReq("OK"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin("c2"), newProductReq("AJENO"))
	require.NoError(t, err)

	all, err := uc.List(ctx, admin("c1"), dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 20, all.Page.Limit)

	lowOnly, err := uc.List(ctx, admin("c1"), dto.ProductListQuery{LowStock: true})
	require.NoError(t, err)
	require.Len(t, lowOnly.Items, 1)
	assert.Equal(t, "LOW", lowOnly.Items[0].Code)

	search, err := uc.List(ctx, admin("c1"), dto.ProductListQuery{Search: "azú"})
	require.NoError(t, err)
	assert.Len(t, search.Items, 1)
}

func TestProduct_DeleteUnusedIsHard(t *testing.T) {
	store := memstore.New()
	uc := catalog.NewProductUseCase(store.Products(), store.Categories(), nil)
	ctx := context.Background()
	created, err := uc.Create(ctx, admin("c1"), newProductReq("A-1"))
	require.NoError(t, err)

	deactivated, err := uc.Delete(ctx, admin("c1"), created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated)
	_, err = uc.Get(ctx, admin("c1"), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_DeleteUsedDeactivates(t *testing.T) {
	store := memstore.New()
	uc := catalog.NewProductUseCase(store.Products(), store.Categories(), nil)
	saleUC := sales.NewSaleUseCase(store.TxRunner(), store.Sales(), store.Customers(), notification.NewNotifier(), nil)
	ctx := context.Background()
	created, err := uc.Create(ctx, admin("c1"), newProductReq("A-1"))
	require.NoError(t, err)

	_, err = saleUC.Create(ctx, admin("c1"), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: created.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	deactivated, err := uc.Delete(ctx, admin("c1"), created.ID)
	require.NoError(t, err)
	assert.True(t, deactivated)
	got, err := uc.Get(ctx, admin("c1"), created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 9, got.Stock)
}

func TestProduct_CacheErrorDoesNotFailWrite(t *testing.T) {
	store := memstore.New()
	uc := catalog.NewProductUseCase(store.Products(), store.Categories(), &spyCache{err: errors.New("redis caído")})

	_, err := uc.Create(context.Background(), admin("c1"), newProductReq("A-1"))
	assert.NoError(t, err)
}

func TestProduct_SuperuserNeedsTenant(t *testing.T) {
	store := memstore.New()
	uc := catalog.NewProductUseCase(store.Products(), store.Categories(), nil)
	super := policy.Actor{UserID: "root", Role: entity.RoleSuperuser}

	_, err := uc.Create(context.Background(), super, newProductReq("A-1"))
	assert.ErrorIs(t, err, domain.ErrTenantRequired)

	super.CompanyID = "c1"
	_, err = uc.Create(context.Background(), super, newProductReq("A-1"))
	assert.NoError(t, err)
}

func TestCategory_CRUD(t *testing.T) {
	store := memstore.New()
	cache := &spyCache{}
	uc := catalog.NewCategoryUseCase(store.Categories(), cache)
	products := catalog.NewProductUseCase(store.Products(), store.Categories(), nil)
	ctx := context.Background()

	cat, err := uc.Create(ctx, admin("c1"), dto.CategoryRequest{Name: " Abarrotes "})
	require.NoError(t, err)
	assert.Equal(t, "Abarrotes", cat.Name)

	_, err = uc.Create(ctx, admin("c1"), dto.CategoryRequest{Name: "Abarrotes"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	upd, err := uc.Update(ctx, admin("c1"), cat.ID, dto.CategoryRequest{Name: "Abarrotes secos", Description: "granos"})
	require.NoError(t, err)
	assert.Equal(t, "granos", upd.Description)

	_, err = uc.Get(ctx, admin("c2"), cat.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req := newProductReq("A-1")
	req.CategoryID = cat.ID
	_, err = products.Create(ctx, admin("c1"), req)
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Delete(ctx, admin("c1"), cat.ID), domain.ErrConflict)

	list, err := uc.List(ctx, admin("c1"), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, []string{"c1", "c1"}, cache.invalidated)
}

func TestSupplier_CRUD(t *testing.T) {
	store := memstore.New()
	uc := catalog.NewSupplierUseCase(store.Suppliers())
	ctx := context.Background()

	s, err := uc.Create(ctx, admin("c1"), dto.SupplierRequest{Name: "Distribuidora Norte", Email: " Ventas@Norte.PE "})
	require.NoError(t, err)
	assert.Equal(t, "ventas@norte.pe", s.Email)

	_, err = uc.Update(ctx, admin("c1"), s.ID, dto.SupplierRequest{Name: "Distribuidora Sur"})
	require.NoError(t, err)
	got, err := uc.Get(ctx, admin("c1"), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Sur", got.Name)

	assert.ErrorIs(t, uc.Delete(ctx, admin("c2"), s.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, admin("c1"), s.ID))
	list, err := uc.List(ctx, admin("c1"), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCustomer_Document(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"dni", "12345678", nil},
		{"ruc", "20123456789", nil},
		{"largo inválido", "123456789", domain.ErrInvalidInput},
		{"letras", "1234567A", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := catalog.NewCustomerUseCase(memstore.New().Customers())
			_, err := uc.Create(context.Background(), admin("c1"), dto.CustomerRequest{Name: "Ana", Document: tt.doc})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCustomer_DocumentUniquePerTenant(t *testing.T) {
	uc := catalog.NewCustomerUseCase(memstore.New().Customers())
	ctx := context.Background()
	in := dto.CustomerRequest{Name: "Ana", Document: "12345678"}

	_, err := uc.Create(ctx, admin("c1"), in)
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin("c1"), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, admin("c2"), in)
	assert.NoError(t, err)
}
