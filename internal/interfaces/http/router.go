package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
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
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *usecase.CompanyUseCase
	UserUC          *usecase.UserUseCase
	ProductUC       *catalog.ProductUseCase
	CategoryUC      *catalog.CategoryUseCase
	SupplierUC      *catalog.SupplierUseCase
	CustomerUC      *catalog.CustomerUseCase
	SaleUC          *sales.SaleUseCase
	PurchaseUC      *purchasing.PurchaseUseCase
	DocumentUC      *documents.DocumentUseCase
	InboxUC         *notification.InboxUseCase
	DashboardUC     *analytics.DashboardUseCase
	PortalUC        *portal.PortalUseCase
	JWTSecret       string
	ServiceName     string
	Ping            func(ctx context.Context) error // opcional: /health consulta la DB
	MetricsGatherer prometheus.Gatherer             // opcional: expone /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))
	if deps.MetricsGatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Portal (público)
	portalGroup := api.Group("/portal")
	portalHandler := NewPortalHandler(deps.PortalUC)
	portalGroup.Get("/:slug", portalHandler.Company)
	portalGroup.Get("/:slug/productos", portalHandler.Catalog)

	// Companies (SUPERUSER)
	companies := api.Group("/companies", authMW, RequireAction(policy.ActionCompanyManage))
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Patch("/:id/status", companyHandler.UpdateStatus)

	// Users (ADMIN)
	users := api.Group("/users", authMW, RequireAction(policy.ActionUserManage))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Patch("/:id/active", userHandler.SetActive)

	read := RequireAction(policy.ActionCatalogRead)
	write := RequireAction(policy.ActionCatalogWrite)

	products := api.Group("/productos", authMW)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", read, productHandler.List)
	products.Get("/:id", read, productHandler.GetByID)
	products.Post("/", write, productHandler.Create)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", write, productHandler.Delete)

	categories := api.Group("/categorias", authMW)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", read, categoryHandler.List)
	categories.Get("/:id", read, categoryHandler.GetByID)
	categories.Post("/", write, categoryHandler.Create)
	categories.Put("/:id", write, categoryHandler.Update)
	categories.Delete("/:id", write, categoryHandler.Delete)

	suppliers := api.Group("/proveedores", authMW)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", read, supplierHandler.List)
	suppliers.Get("/:id", read, supplierHandler.GetByID)
	suppliers.Post("/", write, supplierHandler.Create)
	suppliers.Put("/:id", write, supplierHandler.Update)
	suppliers.Delete("/:id", write, supplierHandler.Delete)

	// Clientes: el vendedor también los registra en caja.
	customerWrite := RequireAction(policy.ActionCustomerWrite)
	customers := api.Group("/clientes", authMW)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", read, customerHandler.List)
	customers.Get("/:id", read, customerHandler.GetByID)
	customers.Post("/", customerWrite, customerHandler.Create)
	customers.Put("/:id", customerWrite, customerHandler.Update)
	customers.Delete("/:id", customerWrite, customerHandler.Delete)

	saleRead := RequireAction(policy.ActionSaleRead)
	salesGroup := api.Group("/ventas", authMW)
	saleHandler := NewSaleHandler(deps.SaleUC, deps.DocumentUC)
	salesGroup.Post("/", RequireAction(policy.ActionSaleCreate), saleHandler.Create)
	salesGroup.Get("/", saleRead, saleHandler.List)
	salesGroup.Get("/:id", saleRead, saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleRead, saleHandler.PDF)
	salesGroup.Get("/:id/xml", saleRead, saleHandler.XML)
	salesGroup.Patch("/:id/anular", RequireAction(policy.ActionSaleVoid), saleHandler.Void)

	purchases := api.Group("/compras", authMW, RequireAction(policy.ActionPurchaseManage))
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.DocumentUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Get("/:id/pdf", purchaseHandler.PDF)
	purchases.Patch("/:id/recibir", purchaseHandler.Receive)
	purchases.Patch("/:id/anular", purchaseHandler.Void)

	notifications := api.Group("/notificaciones", authMW, RequireAction(policy.ActionNotificationUse))
	notificationHandler := NewNotificationHandler(deps.InboxUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/no-leidas", notificationHandler.Unread)
	notifications.Patch("/leer-todas", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/leer", notificationHandler.MarkRead)

	dashboard := api.Group("/dashboard", authMW, RequireAction(policy.ActionDashboardRead))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/resumen", dashboardHandler.GetSummary)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DB_UNAVAILABLE", Message: "base de datos no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
