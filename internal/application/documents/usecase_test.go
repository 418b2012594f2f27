package documents_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/documents"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/notification"
	"github.com/jhoicas/Ventas-api/internal/application/purchasing"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/testutil/memstore"
)

type recorder struct {
	sale     *documents.SaleDocument
	purchase *documents.PurchaseDocument
}

func (r *recorder) SalePDF(_ context.Context, doc documents.SaleDocument) ([]byte, error) {
	r.sale = &doc
	return []byte("%PDF-venta"), nil
}

func (r *recorder) PurchasePDF(_ context.Context, doc documents.PurchaseDocument) ([]byte, error) {
	r.purchase = &doc
	return []byte("%PDF-compra"), nil
}

func (r *recorder) SaleXML(_ context.Context, doc documents.SaleDocument) ([]byte, error) {
	r.sale = &doc
	return []byte("<Invoice/>"), nil
}

var admin = policy.Actor{UserID: "adm", CompanyID: "c1", Role: entity.RoleAdmin}

type env struct {
	store     *memstore.Store
	sales     *sales.SaleUseCase
	purchases *purchasing.PurchaseUseCase
	rec       *recorder
	uc        *documents.DocumentUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: "c1", Name: "Bodega Sol", RUC: "20100000001", Slug: "bodega-sol", Status: entity.CompanyStatusActive}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "cli", CompanyID: "c1", Name: "Ana Torres", Document: "12345678"}))
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: "s1", CompanyID: "c1", Name: "Norte"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p1", CompanyID: "c1", Code: "A1", Name: "Arroz", Stock: 20, MinStock: 1,
		SalePrice: decimal.NewFromInt(5), PurchasePrice: decimal.NewFromInt(3), Active: true,
	}))
	n := notification.NewNotifier()
	e := &env{
		store:     store,
		sales:     sales.NewSaleUseCase(store.TxRunner(), store.Sales(), store.Customers(), n, nil),
		purchases: purchasing.NewPurchaseUseCase(store.TxRunner(), store.Purchases(), store.Suppliers(), n, nil),
		rec:       &recorder{},
	}
	e.uc = documents.NewDocumentUseCase(e.sales, e.purchases, store.Companies(), store.Customers(), store.Suppliers(), e.rec, e.rec)
	return e
}

func (e *env) sale(t *testing.T) *dto.SaleResponse {
	t.Helper()
	resp, err := e.sales.Create(context.Background(), admin, dto.CreateSaleRequest{
		CustomerID:    "cli",
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 3}},
	})
	require.NoError(t, err)
	return resp
}

func TestSalePDF(t *testing.T) {
	e := newEnv(t)
	s := e.sale(t)

	b, name, err := e.uc.SalePDF(context.Background(), admin, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "venta_V-000001.pdf", name)
	assert.Equal(t, "%PDF-venta", string(b))

	require.NotNil(t, e.rec.sale)
	assert.Equal(t, "Bodega Sol", e.rec.sale.Company.Name)
	require.NotNil(t, e.rec.sale.Customer)
	assert.Equal(t, "Ana Torres", e.rec.sale.Customer.Name)
	require.Len(t, e.rec.sale.Lines, 1)
	assert.Equal(t, "Arroz", e.rec.sale.Lines[0].Name)
	assert.True(t, e.rec.sale.Lines[0].Subtotal.Equal(decimal.NewFromInt(15)))
}

func TestSaleXML_VoidedIsConflict(t *testing.T) {
	e := newEnv(t)
	s := e.sale(t)
	ctx := context.Background()

	_, name, err := e.uc.SaleXML(ctx, admin, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "venta_V-000001.xml", name)

	_, err = e.sales.Void(ctx, admin, s.ID, "devolución")
	require.NoError(t, err)
	_, _, err = e.uc.SaleXML(ctx, admin, s.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPurchasePDF(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, err := e.purchases.Create(ctx, admin, dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Lines:      []dto.PurchaseLineRequest{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)

	_, name, err := e.uc.PurchasePDF(ctx, admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "compra_C-000001.pdf", name)
	assert.Equal(t, "Norte", e.rec.purchase.Supplier.Name)
	assert.True(t, e.rec.purchase.Lines[0].UnitPrice.Equal(decimal.NewFromInt(3)))
}

func TestDocuments_OtherTenant(t *testing.T) {
	e := newEnv(t)
	s := e.sale(t)
	other := policy.Actor{UserID: "x", CompanyID: "c2", Role: entity.RoleAdmin}

	_, _, err := e.uc.SalePDF(context.Background(), other, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
