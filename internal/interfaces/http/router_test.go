package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/catalog"
	"github.com/jhoicas/Ventas-api/internal/application/documents"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/notification"
	"github.com/jhoicas/Ventas-api/internal/application/portal"
	"github.com/jhoicas/Ventas-api/internal/application/purchasing"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/xmldoc"
	apphttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/Ventas-api/pkg/jwt"
)

// brokenAnalytics simula una base caída para el dashboard.
type brokenAnalytics struct{}

var errDBDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")

func (brokenAnalytics) SalesTotals(context.Context, string, time.Time, time.Time) (decimal.Decimal, int, error) {
	return decimal.Zero, 0, errDBDown
}
func (brokenAnalytics) PurchaseTotals(context.Context, string, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, errDBDown
}
func (brokenAnalytics) CountLowStock(context.Context, string) (int, error) { return 0, errDBDown }
func (brokenAnalytics) TopProducts(context.Context, string, time.Time, time.Time, int) ([]entity.TopProduct, error) {
	return nil, errDBDown
}

const (
	seedProductID  = "00000000-0000-0000-0000-0000000000a1"
	seedSupplierID = "00000000-0000-0000-0000-0000000000b1"
)

type server struct {
	app     *fiber.App
	store   *memstore.Store
	metrics *metrics.Business
}

func newServer(t *testing.T) *server {
	t.Helper()
	store := memstore.New()
	notifier := notification.NewNotifier()
	m := metrics.New()

	saleUC := sales.NewSaleUseCase(store.TxRunner(), store.Sales(), store.Customers(), notifier, m)
	purchaseUC := purchasing.NewPurchaseUseCase(store.TxRunner(), store.Purchases(), store.Suppliers(), notifier, m)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(zerolog.Nop(), m))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(store.TxRunner(), store.Users(), store.Companies(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		CompanyUC:  usecase.NewCompanyUseCase(store.Companies()),
		UserUC:     usecase.NewUserUseCase(store.Users()),
		ProductUC:  catalog.NewProductUseCase(store.Products(), store.Categories(), nil),
		CategoryUC: catalog.NewCategoryUseCase(store.Categories(), nil),
		SupplierUC: catalog.NewSupplierUseCase(store.Suppliers()),
		CustomerUC: catalog.NewCustomerUseCase(store.Customers()),
		SaleUC:     saleUC,
		PurchaseUC: purchaseUC,
		DocumentUC: documents.NewDocumentUseCase(saleUC, purchaseUC, store.Companies(), store.Customers(), store.Suppliers(),
			pdf.NewMarotoPDFGenerator(), xmldoc.NewInvoiceExporter()),
		InboxUC:         notification.NewInboxUseCase(store.Notifications()),
		DashboardUC:     analytics.NewDashboardUseCase(brokenAnalytics{}, store.Notifications()),
		PortalUC:        portal.NewPortalUseCase(store.Companies(), store.Products(), nil),
		JWTSecret:       testJWTSecret,
		ServiceName:     "ventas-api-test",
		MetricsGatherer: m.Registry(),
	})

	ctx := context.Background()
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{
		ID: testCompanyID, Name: "Bodega Sol", RUC: "20100000001", Slug: "bodega-sol", Status: entity.CompanyStatusActive,
	}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: seedProductID, CompanyID: testCompanyID, Code: "A1", Name: "Arroz 5kg",
		PurchasePrice: decimal.RequireFromString("8"), SalePrice: decimal.RequireFromString("12.50"),
		Stock: 10, MinStock: 5, Active: true,
	}))
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: seedSupplierID, CompanyID: testCompanyID, Name: "Distribuidora Norte"}))
	return &server{app: app, store: store, metrics: m}
}

func bearer(t *testing.T, role, companyID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, "u-"+strings.ToLower(role), companyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServer(t)

	resp, raw := s.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterCompanyRequest{
		CompanyName: "Ferretería Lima", RUC: "20555555551", AdminName: "Rosa", Email: "rosa@ferreteria.pe", Password: "secreta123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	reg := decode[dto.RegisterCompanyResponse](t, raw)
	assert.Equal(t, "ferreteria-lima", reg.Company.Slug)
	assert.Equal(t, entity.RoleAdmin, reg.Login.User.Role)

	resp, raw = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ROSA@ferreteria.pe", Password: "secreta123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	login := decode[dto.LoginResponse](t, raw)
	require.NotEmpty(t, login.Token)

	// el token emitido abre rutas protegidas de su empresa
	resp, _ = s.do(t, http.MethodGet, "/api/productos", "Bearer "+login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "rosa@ferreteria.pe", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_Validation(t *testing.T) {
	s := newServer(t)
	resp, raw := s.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterCompanyRequest{
		CompanyName: "X", RUC: "1", Email: "no-es-email", Password: "corta",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "email")
}

func TestSaleLifecycle(t *testing.T) {
	s := newServer(t)
	admin := bearer(t, entity.RoleAdmin, testCompanyID)
	seller := bearer(t, entity.RoleVendedor, testCompanyID)

	resp, raw := s.do(t, http.MethodPost, "/api/ventas", seller, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: seedProductID, Quantity: 6}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	sale := decode[dto.SaleResponse](t, raw)
	assert.Equal(t, "V-000001", sale.Number)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("75")))
	assert.Equal(t, 4, s.store.Product(seedProductID).Stock)

	// la venta deja su aviso VENTA y, al quedar bajo el mínimo, un STOCK_BAJO
	resp, raw = s.do(t, http.MethodGet, "/api/notificaciones/no-leidas", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"no_leidas":2}`, string(raw))

	resp, raw = s.do(t, http.MethodGet, "/api/notificaciones?no_leidas=true", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var kinds []string
	for _, n := range decode[dto.NotificationListResponse](t, raw).Items {
		kinds = append(kinds, n.Type)
	}
	assert.ElementsMatch(t, []string{entity.NotificationLowStock, entity.NotificationSale}, kinds)

	// el vendedor no anula
	resp, _ = s.do(t, http.MethodPatch, "/api/ventas/"+sale.ID+"/anular", seller, dto.VoidSaleRequest{Reason: "error"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = s.do(t, http.MethodPatch, "/api/ventas/"+sale.ID+"/anular", admin, dto.VoidSaleRequest{Reason: "cliente desistió"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, entity.SaleStatusVoided, decode[dto.SaleResponse](t, raw).Status)
	assert.Equal(t, 10, s.store.Product(seedProductID).Stock)

	resp, raw = s.do(t, http.MethodPatch, "/api/ventas/"+sale.ID+"/anular", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 10, s.store.Product(seedProductID).Stock)
	assert.Equal(t, "ALREADY_VOIDED", decode[dto.ErrorResponse](t, raw).Code)
}

func TestSale_Errors(t *testing.T) {
	s := newServer(t)
	seller := bearer(t, entity.RoleVendedor, testCompanyID)

	cases := []struct {
		name   string
		body   dto.CreateSaleRequest
		status int
		code   string
	}{
		{
			name:   "sin productos",
			body:   dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash},
			status: http.StatusBadRequest, code: "VALIDATION",
		},
		{
			name:   "stock insuficiente",
			body:   dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash, Lines: []dto.SaleLineRequest{{ProductID: seedProductID, Quantity: 11}}},
			status: http.StatusBadRequest, code: "INSUFFICIENT_STOCK",
		},
		{
			name:   "producto de otra empresa o inexistente",
			body:   dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash, Lines: []dto.SaleLineRequest{{ProductID: "00000000-0000-0000-0000-00000000dead", Quantity: 1}}},
			status: http.StatusNotFound, code: "NOT_FOUND",
		},
		{
			name:   "id de producto mal formado",
			body:   dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash, Lines: []dto.SaleLineRequest{{ProductID: "abc", Quantity: 1}}},
			status: http.StatusBadRequest, code: "VALIDATION",
		},
		{
			name: "id de cliente mal formado",
			body: dto.CreateSaleRequest{
				PaymentMethod: entity.PaymentCash, CustomerID: "cliente-1",
				Lines: []dto.SaleLineRequest{{ProductID: seedProductID, Quantity: 1}},
			},
			status: http.StatusBadRequest, code: "VALIDATION",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := s.do(t, http.MethodPost, "/api/ventas", seller, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, raw).Code)
		})
	}
	assert.Equal(t, 10, s.store.Product(seedProductID).Stock)
	assert.Zero(t, s.store.SaleCount())
}

func TestSale_OtherTenantIsNotFound(t *testing.T) {
	s := newServer(t)
	resp, raw := s.do(t, http.MethodPost, "/api/ventas", bearer(t, entity.RoleAdmin, testCompanyID), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCard,
		Lines:         []dto.SaleLineRequest{{ProductID: seedProductID, Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	id := decode[dto.SaleResponse](t, raw).ID

	other := bearer(t, entity.RoleAdmin, testOtherCompanyID)
	for _, path := range []string{"/api/ventas/" + id, "/api/ventas/" + id + "/pdf", "/api/ventas/" + id + "/xml"} {
		resp, _ := s.do(t, http.MethodGet, path, other, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	// un superusuario la ve eligiendo la empresa con X-Company-ID
	req := httptest.NewRequest(http.MethodGet, "/api/ventas/"+id, nil)
	req.Header.Set("Authorization", bearer(t, entity.RoleSuperuser, ""))
	req.Header.Set(apphttp.HeaderCompanyID, testCompanyID)
	res, err := s.app.Test(req, -1)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestSaleDocuments(t *testing.T) {
	s := newServer(t)
	admin := bearer(t, entity.RoleAdmin, testCompanyID)
	_, raw := s.do(t, http.MethodPost, "/api/ventas", admin, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: seedProductID, Quantity: 2}},
	})
	sale := decode[dto.SaleResponse](t, raw)

	resp, body := s.do(t, http.MethodGet, "/api/ventas/"+sale.ID+"/pdf", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "venta_V-000001.pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, body = s.do(t, http.MethodGet, "/api/ventas/"+sale.ID+"/xml", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ok, err := xmldoc.Verify(body)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPurchaseLifecycle(t *testing.T) {
	s := newServer(t)
	admin := bearer(t, entity.RoleAdmin, testCompanyID)

	resp, _ := s.do(t, http.MethodGet, "/api/compras", bearer(t, entity.RoleVendedor, testCompanyID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := s.do(t, http.MethodPost, "/api/compras", admin, dto.CreatePurchaseRequest{
		SupplierID: seedSupplierID,
		Lines:      []dto.PurchaseLineRequest{{ProductID: seedProductID, Quantity: 5, UnitPrice: decimal.RequireFromString("7.50")}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	purchase := decode[dto.PurchaseResponse](t, raw)
	assert.Equal(t, "C-000001", purchase.Number)
	assert.Equal(t, entity.PurchaseStatusPending, purchase.Status)
	assert.Equal(t, 10, s.store.Product(seedProductID).Stock)

	resp, raw = s.do(t, http.MethodPatch, "/api/compras/"+purchase.ID+"/recibir", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 15, s.store.Product(seedProductID).Stock)

	resp, raw = s.do(t, http.MethodPatch, "/api/compras/"+purchase.ID+"/anular", admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, raw).Code)
	assert.Equal(t, 15, s.store.Product(seedProductID).Stock)

	resp, body := s.do(t, http.MethodGet, "/api/compras/"+purchase.ID+"/pdf", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// Ids que no son UUID nunca llegan a la base: 404 en la ruta, 400 en el body o el query.
func TestMalformedIDs(t *testing.T) {
	s := newServer(t)
	admin := bearer(t, entity.RoleAdmin, testCompanyID)

	cases := []struct {
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{http.MethodGet, "/api/ventas/xyz", nil, http.StatusNotFound, "NOT_FOUND"},
		{http.MethodGet, "/api/ventas/xyz/pdf", nil, http.StatusNotFound, "NOT_FOUND"},
		{http.MethodPatch, "/api/ventas/xyz/anular", nil, http.StatusNotFound, "NOT_FOUND"},
		{http.MethodPatch, "/api/compras/xyz/recibir", nil, http.StatusNotFound, "NOT_FOUND"},
		{http.MethodDelete, "/api/productos/abc", nil, http.StatusNotFound, "NOT_FOUND"},
		{http.MethodPatch, "/api/notificaciones/abc/leer", nil, http.StatusNotFound, "NOT_FOUND"},
		{http.MethodGet, "/api/productos?categoria=abc", nil, http.StatusBadRequest, "VALIDATION"},
		{http.MethodPost, "/api/compras", dto.CreatePurchaseRequest{
			SupplierID: "prov-1",
			Lines:      []dto.PurchaseLineRequest{{ProductID: seedProductID, Quantity: 1}},
		}, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp, raw := s.do(t, tc.method, tc.path, admin, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, raw).Code)
		})
	}
}

func TestCatalogPermissions(t *testing.T) {
	s := newServer(t)
	seller := bearer(t, entity.RoleVendedor, testCompanyID)

	resp, _ := s.do(t, http.MethodPost, "/api/productos", seller, dto.CreateProductRequest{Code: "B2", Name: "Azúcar"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el vendedor no escribe productos")

	resp, raw := s.do(t, http.MethodPost, "/api/clientes", seller, dto.CustomerRequest{Name: "Ana", Document: "12345678"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = s.do(t, http.MethodGet, "/api/productos?q=arroz&limit=5", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ProductListResponse](t, raw)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "A1", list.Items[0].Code)

	resp, _ = s.do(t, http.MethodGet, "/api/productos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductDelete(t *testing.T) {
	s := newServer(t)
	admin := bearer(t, entity.RoleAdmin, testCompanyID)

	resp, raw := s.do(t, http.MethodPost, "/api/productos", admin, dto.CreateProductRequest{
		Code: "B2", Name: "Azúcar", SalePrice: decimal.RequireFromString("4.20"), Stock: 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	id := decode[dto.ProductResponse](t, raw).ID

	resp, _ = s.do(t, http.MethodDelete, "/api/productos/"+id, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// con ventas registradas solo se desactiva
	_, _ = s.do(t, http.MethodPost, "/api/ventas", admin, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: seedProductID, Quantity: 1}},
	})
	resp, raw = s.do(t, http.MethodDelete, "/api/productos/"+seedProductID, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"desactivado":true}`, string(raw))
	assert.False(t, s.store.Product(seedProductID).Active)
}

func TestPortalIsPublic(t *testing.T) {
	s := newServer(t)

	resp, raw := s.do(t, http.MethodGet, "/api/portal/bodega-sol/productos", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	catalog := decode[dto.PortalCatalogResponse](t, raw)
	require.Len(t, catalog.Products, 1)
	assert.True(t, catalog.Products[0].Available)
	assert.NotContains(t, string(raw), "precio_compra")

	resp, _ = s.do(t, http.MethodGet, "/api/portal/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompaniesRequireSuperuser(t *testing.T) {
	s := newServer(t)

	resp, _ := s.do(t, http.MethodGet, "/api/companies", bearer(t, entity.RoleAdmin, testCompanyID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	super := bearer(t, entity.RoleSuperuser, "")
	resp, raw := s.do(t, http.MethodPatch, "/api/companies/"+testCompanyID+"/status", super, dto.UpdateCompanyStatusRequest{Status: entity.CompanyStatusSuspended})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	// empresa suspendida: el portal deja de mostrarla
	resp, _ = s.do(t, http.MethodGet, "/api/portal/bodega-sol", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInternalErrorIsOpaque(t *testing.T) {
	s := newServer(t)

	resp, raw := s.do(t, http.MethodGet, "/api/dashboard/resumen", bearer(t, entity.RoleAdmin, testCompanyID), nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "error interno", body.Message)
	assert.NotEmpty(t, body.RequestID)
	assert.Equal(t, resp.Header.Get(fiber.HeaderXRequestID), body.RequestID)
	assert.NotContains(t, string(raw), "10.0.0.5")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	resp, raw := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"status":"ok"`)

	_, _ = s.do(t, http.MethodPost, "/api/ventas", bearer(t, entity.RoleAdmin, testCompanyID), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Lines:         []dto.SaleLineRequest{{ProductID: seedProductID, Quantity: 1}},
	})

	resp, raw = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(raw)
	assert.Contains(t, text, metrics.MetricSalesTotal+" 1")
	assert.Contains(t, text, metrics.MetricHTTPRequests+`{method="POST",route="/api/ventas`)
	assert.Contains(t, text, metrics.MetricHTTPRequests+`{method="GET",route="/health"`)
	assert.NotContains(t, text, `method="GETT"`)
}
