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

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

func (uc *SupplierUseCase) Create(ctx context.Context, actor policy.Actor, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applySupplier(s, in)
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.SupplierResponse, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, actor policy.Actor, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	applySupplier(s, in)
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Delete falla con domain.ErrConflict si el proveedor tiene compras.
func (uc *SupplierUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, s.ID)
}

func (uc *SupplierUseCase) load(ctx context.Context, actor policy.Actor, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || !policy.CanAccess(actor, s.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func applySupplier(s *entity.Supplier, in dto.SupplierRequest) {
	s.Name = strings.TrimSpace(in.Name)
	s.RUC = strings.TrimSpace(in.RUC)
	s.Contact = in.Contact
	s.Phone = in.Phone
	s.Email = strings.ToLower(strings.TrimSpace(in.Email))
	s.Address = in.Address
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		RUC:     s.RUC,
		Contact: s.Contact,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
	}
}
