package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProductUseCase CRUD de productos. El stock solo lo mueven ventas y compras;
// aquí se fija únicamente el stock inicial.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        CacheInvalidator
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, cache CacheInvalidator) *ProductUseCase {
	if cache == nil {
		cache = nopInvalidator{}
	}
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, cache: cache}
}

// Create crea un producto con código único en la empresa.
func (uc *ProductUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	if err := validatePrices(in.PurchasePrice, in.SalePrice); err != nil {
		return nil, err
	}
	if in.Stock < 0 || in.MinStock < 0 {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := uc.checkCategory(ctx, companyID, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CategoryID:    in.CategoryID,
		Code:          strings.TrimSpace(in.Code),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         in.Stock,
		MinStock:      in.MinStock,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID)
	return toProductResponse(p), nil
}

// Get obtiene un producto de la empresa del actor.
func (uc *ProductUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update modifica datos de catálogo; stock queda fuera.
func (uc *ProductUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, p.CompanyID, *in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.PurchasePrice != nil {
		p.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		p.SalePrice = *in.SalePrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: stock mínimo negativo", domain.ErrInvalidInput)
		}
		p.MinStock = *in.MinStock
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if err := validatePrices(p.PurchasePrice, p.SalePrice); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, p.CompanyID)
	return toProductResponse(p), nil
}

// List lista productos de la empresa con búsqueda y filtros.
func (uc *ProductUseCase) List(ctx context.Context, actor policy.Actor, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	q.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		CompanyID:    companyID,
		Search:       strings.TrimSpace(q.Search),
		CategoryID:   q.CategoryID,
		LowStockOnly: q.LowStock,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// Delete borra el producto si nunca se usó en un documento; si se usó, lo desactiva.
// Devuelve true cuando solo se desactivó.
func (uc *ProductUseCase) Delete(ctx context.Context, actor policy.Actor, id string) (deactivated bool, err error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return false, err
	}
	used, err := uc.repo.HasDocuments(ctx, p.ID)
	if err != nil {
		return false, err
	}
	if used {
		p.Active = false
		p.UpdatedAt = time.Now()
		err = uc.repo.Update(ctx, p)
	} else {
		err = uc.repo.Delete(ctx, p.ID)
	}
	if err != nil {
		return false, err
	}
	invalidate(ctx, uc.cache, p.CompanyID)
	return used, nil
}

func (uc *ProductUseCase) load(ctx context.Context, actor policy.Actor, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !policy.CanAccess(actor, p.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, companyID, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	c, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil || c.CompanyID != companyID {
		return fmt.Errorf("%w: categoría", domain.ErrNotFound)
	}
	return nil
}

// invalidate no falla la operación: la caché expira sola por TTL.
func invalidate(ctx context.Context, cache CacheInvalidator, companyID string) {
	if err := cache.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar caché del portal")
	}
}

func validatePrices(purchase, sale decimal.Decimal) error {
	if purchase.IsNegative() || sale.IsNegative() {
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		CategoryID:    p.CategoryID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
