package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios de una empresa (lo usa el ADMIN).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista los usuarios de la empresa del actor.
func (uc *UserUseCase) List(ctx context.Context, actor policy.Actor, page dto.PageRequest) ([]dto.UserResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Create crea un ADMIN o VENDEDOR en la empresa del actor.
func (uc *UserUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleVendedor {
		return nil, domain.ErrInvalidInput
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// SetActive activa o desactiva un usuario de la empresa. Un usuario no puede desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, actor policy.Actor, id string, active bool) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.CompanyID == "" || !policy.CanAccess(actor, u.CompanyID) {
		return nil, domain.ErrNotFound
	}
	if u.ID == actor.UserID && !active {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.SetActive(ctx, u.ID, active); err != nil {
		return nil, err
	}
	u.Active = active
	return auth.ToUserResponse(u), nil
}
