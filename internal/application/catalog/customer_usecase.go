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
)

// CustomerUseCase CRUD de clientes. El documento (DNI o RUC) es único por empresa.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (uc *CustomerUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(in.Document); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCustomer(c, in)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) List(ctx context.Context, actor policy.Actor, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(in.Document); err != nil {
		return nil, err
	}
	applyCustomer(c, in)
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete falla con domain.ErrConflict si el cliente tiene ventas.
func (uc *CustomerUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, c.ID)
}

func (uc *CustomerUseCase) load(ctx context.Context, actor policy.Actor, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !policy.CanAccess(actor, c.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// validateDocument acepta DNI (8 dígitos) o RUC (11 dígitos).
func validateDocument(doc string) error {
	doc = strings.TrimSpace(doc)
	if len(doc) != 8 && len(doc) != 11 {
		return fmt.Errorf("%w: documento debe ser DNI (8) o RUC (11)", domain.ErrInvalidInput)
	}
	for _, r := range doc {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: documento solo admite dígitos", domain.ErrInvalidInput)
		}
	}
	return nil
}

func applyCustomer(c *entity.Customer, in dto.CustomerRequest) {
	c.Name = strings.TrimSpace(in.Name)
	c.Document = strings.TrimSpace(in.Document)
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.Phone = in.Phone
	c.Address = in.Address
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:       c.ID,
		Name:     c.Name,
		Document: c.Document,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
	}
}
