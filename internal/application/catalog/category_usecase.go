package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías de la empresa.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache CacheInvalidator
}

func NewCategoryUseCase(repo repository.CategoryRepository, cache CacheInvalidator) *CategoryUseCase {
	if cache == nil {
		cache = nopInvalidator{}
	}
	return &CategoryUseCase{repo: repo, cache: cache}
}

// Create crea una categoría; el nombre es único por empresa.
func (uc *CategoryUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, companyID)
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.CategoryResponse, error) {
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) List(ctx context.Context, actor policy.Actor, page dto.PageRequest) ([]dto.CategoryResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, c.CompanyID)
	return toCategoryResponse(c), nil
}

// Delete falla con domain.ErrConflict si algún producto usa la categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, c.ID); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, c.CompanyID)
	return nil
}

func (uc *CategoryUseCase) load(ctx context.Context, actor policy.Actor, id string) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !policy.CanAccess(actor, c.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}
