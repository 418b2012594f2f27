package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/Ventas-api/docs"
	appanalytics "github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/catalog"
	"github.com/jhoicas/Ventas-api/internal/application/documents"
	"github.com/jhoicas/Ventas-api/internal/application/notification"
	"github.com/jhoicas/Ventas-api/internal/application/portal"
	"github.com/jhoicas/Ventas-api/internal/application/purchasing"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/cache"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/xmldoc"
	httpRouter "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate").Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché del portal: sin REDIS_ADDR los casos de uso usan su implementación nula.
	var (
		catalogCache portal.CatalogCache
		invalidator  catalog.CacheInvalidator
	)
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		portalCache := cache.NewPortalCache(client, cfg.Portal.CacheTTL, log.Component("portal-cache").Zerolog())
		catalogCache, invalidator = portalCache, portalCache
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: catálogo público sin caché")
	}

	var businessMetrics *metrics.Business
	var salesMetrics sales.Metrics
	var purchaseMetrics purchasing.Metrics
	var httpObserver httpRouter.HTTPObserver
	if cfg.App.MetricsEnabled {
		businessMetrics = metrics.New()
		salesMetrics, purchaseMetrics, httpObserver = businessMetrics, businessMetrics, businessMetrics
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := notification.NewNotifier()
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, customerRepo, notifier, salesMetrics)
	purchaseUC := purchasing.NewPurchaseUseCase(txRunner, purchaseRepo, supplierRepo, notifier, purchaseMetrics)
	documentUC := documents.NewDocumentUseCase(
		saleUC, purchaseUC, companyRepo, customerRepo, supplierRepo,
		infrapdf.NewMarotoPDFGenerator(), xmldoc.NewInvoiceExporter(),
	)
	authUC := auth.NewAuthUseCase(txRunner, userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: strings.Join([]string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAuthorization, httpRouter.HeaderCompanyID}, ","),
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http").Zerolog(), httpObserver))

	// Swagger UI: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Ventas API",
	}))

	deps := httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(companyRepo),
		UserUC:      usecase.NewUserUseCase(userRepo),
		ProductUC:   catalog.NewProductUseCase(productRepo, categoryRepo, invalidator),
		CategoryUC:  catalog.NewCategoryUseCase(categoryRepo, invalidator),
		SupplierUC:  catalog.NewSupplierUseCase(supplierRepo),
		CustomerUC:  catalog.NewCustomerUseCase(customerRepo),
		SaleUC:      saleUC,
		PurchaseUC:  purchaseUC,
		DocumentUC:  documentUC,
		InboxUC:     notification.NewInboxUseCase(notificationRepo),
		DashboardUC: appanalytics.NewDashboardUseCase(analyticsRepo, notificationRepo),
		PortalUC:    portal.NewPortalUseCase(companyRepo, productRepo, catalogCache),
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		Ping:        pool.Ping,
	}
	if businessMetrics != nil {
		deps.MetricsGatherer = businessMetrics.Registry()
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
