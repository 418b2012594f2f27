// import_products carga productos desde un CSV (UTF-8 o Latin-1) en el catálogo de una empresa.
//
// Uso: go run ./cmd/import_products -empresa <company_id> [-latin1] [-dry-run] productos.csv
//
// Cabecera: codigo;nombre;descripcion;precio_compra;precio_venta;stock;stock_minimo;categoria
// (separador ';' o ','). Los códigos repetidos en la empresa se reportan y se saltan.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Ventas-api/internal/application/catalog"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	companyID := flag.String("empresa", "", "ID de la empresa destino")
	latin1 := flag.Bool("latin1", false, "forzar lectura como ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "solo validar el archivo")
	flag.Parse()
	if *companyID == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_products -empresa <company_id> [-latin1] [-dry-run] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "import_products"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	products, rowErrs := parseProducts(f, *latin1)
	f.Close()
	for _, e := range rowErrs {
		log.Warn().Err(e).Msg("fila descartada")
	}
	log.Info().Int("validos", len(products)).Int("descartados", len(rowErrs)).Msg("archivo leído")
	if *dryRun {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	company, err := postgres.NewCompanyRepository(pool).GetByID(ctx, *companyID)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar empresa")
	}
	if company == nil {
		log.Fatal().Str("empresa", *companyID).Msg("la empresa no existe")
	}

	// sin caché: el portal toma el catálogo nuevo cuando vence el TTL
	uc := catalog.NewProductUseCase(postgres.NewProductRepository(pool), postgres.NewCategoryRepository(pool), nil)
	actor := policy.Actor{UserID: "import", CompanyID: company.ID, Role: entity.RoleSuperuser}

	var created, skipped int
	for _, p := range products {
		if _, err := uc.Create(ctx, actor, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) {
				log.Warn().Err(err).Str("codigo", p.Code).Msg("producto omitido")
				skipped++
				continue
			}
			log.Fatal().Err(err).Str("codigo", p.Code).Msg("crear producto")
		}
		created++
	}
	log.Info().Int("creados", created).Int("omitidos", skipped).Str("empresa", company.Name).Msg("importación terminada")
}
