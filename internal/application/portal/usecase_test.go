package portal_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/portal"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/testutil/memstore"
)

type mapCache struct {
	items map[string]*dto.PortalCatalogResponse
	gets  int
}

func (m *mapCache) Get(_ context.Context, companyID string) (*dto.PortalCatalogResponse, bool, error) {
	m.gets++
	c, ok := m.items[companyID]
	return c, ok, nil
}

func (m *mapCache) Set(_ context.Context, companyID string, c *dto.PortalCatalogResponse) error {
	m.items[companyID] = c
	return nil
}

func seed(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: "c1", Name: "Bodega Sol", RUC: "1", Slug: "bodega-sol", Status: entity.CompanyStatusActive}))
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: "c2", Name: "Cerrada", RUC: "2", Slug: "cerrada", Status: entity.CompanyStatusSuspended}))
	for _, p := range []entity.Product{
		{ID: "p1", CompanyID: "c1", Code: "A", Name: "Arroz", Stock: 4, SalePrice: decimal.RequireFromString("4.50"), PurchasePrice: decimal.NewFromInt(3), Active: true},
		{ID: "p2", CompanyID: "c1", Code: "B", Name: "Bolsa", Stock: 0, SalePrice: decimal.NewFromInt(1), Active: true},
		{ID: "p3", CompanyID: "c1", Code: "C", Name: "Caducado", Stock: 9, Active: false},
	} {
		require.NoError(t, store.Products().Create(ctx, &p))
	}
	return store
}

func TestCatalog_ActiveProductsOnly(t *testing.T) {
	store := seed(t)
	uc := portal.NewPortalUseCase(store.Companies(), store.Products(), nil)

	got, err := uc.Catalog(context.Background(), "bodega-sol")
	require.NoError(t, err)
	assert.Equal(t, "Bodega Sol", got.Company.Name)
	require.Len(t, got.Products, 2)
	assert.Equal(t, "Arroz", got.Products[0].Name)
	assert.True(t, got.Products[0].Available)
	assert.True(t, got.Products[0].Price.Equal(decimal.RequireFromString("4.50")))
	assert.False(t, got.Products[1].Available, "sin stock se muestra como no disponible")
}

func TestCatalog_UsesCache(t *testing.T) {
	store := seed(t)
	cache := &mapCache{items: map[string]*dto.PortalCatalogResponse{}}
	uc := portal.NewPortalUseCase(store.Companies(), store.Products(), cache)
	ctx := context.Background()

	first, err := uc.Catalog(ctx, "bodega-sol")
	require.NoError(t, err)
	require.Contains(t, cache.items, "c1")

	require.NoError(t, store.Products().Delete(ctx, "p2"))
	second, err := uc.Catalog(ctx, "bodega-sol")
	require.NoError(t, err)
	assert.Equal(t, first, second, "se sirve desde caché hasta que se invalide")
	assert.Equal(t, 2, cache.gets)
}

func TestPortal_UnknownOrSuspended(t *testing.T) {
	store := seed(t)
	uc := portal.NewPortalUseCase(store.Companies(), store.Products(), nil)
	ctx := context.Background()

	for _, slug := range []string{"no-existe", "cerrada"} {
		_, err := uc.Company(ctx, slug)
		assert.ErrorIs(t, err, domain.ErrNotFound, slug)
		_, err = uc.Catalog(ctx, slug)
		assert.ErrorIs(t, err, domain.ErrNotFound, slug)
	}
}
