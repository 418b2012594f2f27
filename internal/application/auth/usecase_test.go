package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/testutil/memstore"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(store *memstore.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.TxRunner(), store.Users(), store.Companies(),
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "ventas-api"})
}

func registerReq(company, ruc, email string) dto.RegisterCompanyRequest {
	return dto.RegisterCompanyRequest{
		CompanyName: company,
		RUC:         ruc,
		AdminName:   "Rosa Quispe",
		Email:       email,
		Password:    "secreto123",
	}
}

func TestRegister_CreatesCompanyAndAdmin(t *testing.T) {
	store := memstore.New()
	uc := newAuth(store)

	resp, err := uc.Register(context.Background(), registerReq("Bodega Ñandú", "20123456789", " Rosa@Nandu.pe "))
	require.NoError(t, err)

	assert.Equal(t, "bodega-nandu", resp.Company.Slug)
	assert.Equal(t, entity.CompanyStatusActive, resp.Company.Status)
	assert.Equal(t, entity.RoleAdmin, resp.Login.User.Role)
	assert.Equal(t, "rosa@nandu.pe", resp.Login.User.Email)

	claims, err := jwt.Parse(secret, resp.Login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Company.ID, claims.CompanyID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestRegister_SlugCollisionGetsSuffix(t *testing.T) {
	store := memstore.New()
	uc := newAuth(store)
	ctx := context.Background()

	_, err := uc.Register(ctx, registerReq("Bodega Sol", "20000000001", "a@sol.pe"))
	require.NoError(t, err)
	resp, err := uc.Register(ctx, registerReq("Bodega  Sol", "20000000002", "b@sol.pe"))
	require.NoError(t, err)
	assert.Equal(t, "bodega-sol-2", resp.Company.Slug)
}

func TestRegister_DuplicateEmailRollsBackCompany(t *testing.T) {
	store := memstore.New()
	uc := newAuth(store)
	ctx := context.Background()

	_, err := uc.Register(ctx, registerReq("Uno", "20000000001", "admin@x.pe"))
	require.NoError(t, err)

	_, err = uc.Register(ctx, registerReq("Dos", "20000000002", "ADMIN@x.pe"))
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	c, err := store.Companies().GetBySlug(ctx, "dos")
	require.NoError(t, err)
	assert.Nil(t, c, "la empresa no debe quedar sin administrador")
}

func TestRegister_DuplicateRUC(t *testing.T) {
	store := memstore.New()
	uc := newAuth(store)
	ctx := context.Background()

	_, err := uc.Register(ctx, registerReq("Uno", "20000000001", "a@x.pe"))
	require.NoError(t, err)
	_, err = uc.Register(ctx, registerReq("Dos", "20000000001", "b@x.pe"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		setup    func(t *testing.T, store *memstore.Store, companyID, userID string)
		email    string
		password string
		wantErr  error
	}{
		{"credenciales válidas", nil, "rosa@x.pe", "secreto123", nil},
		{"email en mayúsculas", nil, "ROSA@X.PE", "secreto123", nil},
		{"password incorrecto", nil, "rosa@x.pe", "otra", domain.ErrUnauthorized},
		{"email inexistente", nil, "nadie@x.pe", "secreto123", domain.ErrUnauthorized},
		{"usuario inactivo", func(t *testing.T, store *memstore.Store, _, userID string) {
			require.NoError(t, store.Users().SetActive(ctx, userID, false))
		}, "rosa@x.pe", "secreto123", domain.ErrForbidden},
		{"empresa suspendida", func(t *testing.T, store *memstore.Store, companyID, _ string) {
			require.NoError(t, store.Companies().UpdateStatus(ctx, companyID, entity.CompanyStatusSuspended))
		}, "rosa@x.pe", "secreto123", domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			uc := newAuth(store)
			reg, err := uc.Register(ctx, registerReq("Empresa", "20000000001", "rosa@x.pe"))
			require.NoError(t, err)
			if tt.setup != nil {
				tt.setup(t, store, reg.Company.ID, reg.Login.User.ID)
			}

			resp, err := uc.Login(ctx, dto.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, reg.Login.User.ID, resp.User.ID)
		})
	}
}

func TestLogin_SuperuserWithoutCompany(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	hash, err := auth.HashPassword("root-pass")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: "root", Email: "root@ventas.pe", PasswordHash: hash, Name: "Root", Role: entity.RoleSuperuser, Active: true,
	}))

	resp, err := newAuth(store).Login(ctx, dto.LoginRequest{Email: "root@ventas.pe", Password: "root-pass"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.CompanyID)
	assert.Equal(t, entity.RoleSuperuser, claims.Role)
}
