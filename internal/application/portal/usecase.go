// Package portal expone el catálogo público de cada empresa (sin autenticación).
package portal

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// maxCatalogProducts tope de productos publicados por empresa.
const maxCatalogProducts = 500

// CatalogCache guarda el catálogo armado por empresa. ok=false indica que no estaba en caché.
type CatalogCache interface {
	Get(ctx context.Context, companyID string) (catalog *dto.PortalCatalogResponse, ok bool, err error)
	Set(ctx context.Context, companyID string, catalog *dto.PortalCatalogResponse) error
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (*dto.PortalCatalogResponse, bool, error) {
	return nil, false, nil
}
func (nopCache) Set(context.Context, string, *dto.PortalCatalogResponse) error { return nil }

// PortalUseCase lectura pública por slug. Empresas no activas no existen para el portal.
type PortalUseCase struct {
	companyRepo repository.CompanyRepository
	productRepo repository.ProductRepository
	cache       CatalogCache
}

// NewPortalUseCase construye el caso de uso; con cache nil siempre consulta la base.
func NewPortalUseCase(companyRepo repository.CompanyRepository, productRepo repository.ProductRepository, cache CatalogCache) *PortalUseCase {
	if cache == nil {
		cache = nopCache{}
	}
	return &PortalUseCase{companyRepo: companyRepo, productRepo: productRepo, cache: cache}
}

// Company devuelve los datos públicos de la empresa.
func (uc *PortalUseCase) Company(ctx context.Context, slug string) (*dto.PortalCompanyResponse, error) {
	c, err := uc.company(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := toPortalCompany(c)
	return &resp, nil
}

// Catalog devuelve los productos activos de la empresa. Los errores de caché solo se registran.
func (uc *PortalUseCase) Catalog(ctx context.Context, slug string) (*dto.PortalCatalogResponse, error) {
	c, err := uc.company(ctx, slug)
	if err != nil {
		return nil, err
	}
	cached, ok, err := uc.cache.Get(ctx, c.ID)
	if err != nil {
		log.Warn().Err(err).Str("company_id", c.ID).Msg("portal: lectura de caché")
	} else if ok {
		return cached, nil
	}

	products, err := uc.productRepo.List(ctx, repository.ProductFilter{
		CompanyID:  c.ID,
		ActiveOnly: true,
		Limit:      maxCatalogProducts,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.PortalCatalogResponse{
		Company:  toPortalCompany(c),
		Products: make([]dto.PortalProductResponse, 0, len(products)),
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.PortalProductResponse{
			ID:          p.ID,
			Code:        p.Code,
			Name:        p.Name,
			Description: p.Description,
			CategoryID:  p.CategoryID,
			Price:       p.SalePrice,
			Available:   p.Stock > 0,
		})
	}
	if err := uc.cache.Set(ctx, c.ID, out); err != nil {
		log.Warn().Err(err).Str("company_id", c.ID).Msg("portal: escritura de caché")
	}
	return out, nil
}

func (uc *PortalUseCase) company(ctx context.Context, slug string) (*entity.Company, error) {
	c, err := uc.companyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.IsActive() {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func toPortalCompany(c *entity.Company) dto.PortalCompanyResponse {
	return dto.PortalCompanyResponse{
		Name:    c.Name,
		Slug:    c.Slug,
		Address: c.Address,
		Phone:   c.Phone,
		Email:   c.Email,
	}
}
