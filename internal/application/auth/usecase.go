package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
	"github.com/jhoicas/Ventas-api/pkg/slug"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de empresa y login.
type AuthUseCase struct {
	txRunner    TxRunner
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(txRunner TxRunner, userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{txRunner: txRunner, userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Register da de alta una empresa con su primer usuario ADMIN y devuelve la sesión iniciada.
// Devuelve domain.ErrDuplicate si el RUC existe y domain.ErrEmailAlreadyExists si el email está tomado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.CompanyName),
		RUC:       strings.TrimSpace(in.RUC),
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     normalizeEmail(in.Email),
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.AdminName),
		Role:         entity.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunIdentity(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		s, err := UniqueSlug(ctx, companyRepo, company.Name)
		if err != nil {
			return err
		}
		company.Slug = s
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	login, err := uc.session(user)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterCompanyResponse{Company: *ToCompanyResponse(company), Login: *login}, nil
}

// Login verifica email/password y emite el JWT. Usuario o empresa inactivos no pueden entrar.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	if user.Role != entity.RoleSuperuser {
		company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil || !company.IsActive() {
			return nil, domain.ErrForbidden
		}
	}
	return uc.session(user)
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// HashPassword aplica bcrypt con el costo por defecto.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// UniqueSlug deriva el slug del nombre y le agrega sufijo si ya está en uso.
func UniqueSlug(ctx context.Context, repo repository.CompanyRepository, name string) (string, error) {
	return slug.Unique(slug.Make(name), func(candidate string) (bool, error) {
		c, err := repo.GetBySlug(ctx, candidate)
		return c != nil, err
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		RUC:       c.RUC,
		Slug:      c.Slug,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
