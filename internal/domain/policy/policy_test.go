package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
)

func TestCanAccess(t *testing.T) {
	admin := policy.Actor{UserID: "u1", CompanyID: "c1", Role: entity.RoleAdmin}
	super := policy.Actor{UserID: "u0", CompanyID: "c0", Role: entity.RoleSuperuser}
	sinEmpresa := policy.Actor{UserID: "u2", Role: entity.RoleVendedor}

	assert.True(t, policy.CanAccess(admin, "c1"))
	assert.False(t, policy.CanAccess(admin, "c2"), "otro tenant debe denegarse")
	assert.True(t, policy.CanAccess(super, "c2"), "SUPERUSER accede a cualquier tenant")
	assert.False(t, policy.CanAccess(sinEmpresa, ""), "actor sin empresa no accede a recursos sin empresa")
}

func TestAllowed(t *testing.T) {
	cases := []struct {
		role   string
		action string
		want   bool
	}{
		{entity.RoleAdmin, policy.ActionSaleVoid, true},
		{entity.RoleVendedor, policy.ActionSaleCreate, true},
		{entity.RoleVendedor, policy.ActionSaleVoid, false},
		{entity.RoleVendedor, policy.ActionPurchaseManage, false},
		{entity.RoleVendedor, policy.ActionCatalogWrite, false},
		{entity.RoleAdmin, policy.ActionCompanyManage, false},
		{entity.RoleSuperuser, policy.ActionCompanyManage, true},
		{"DESCONOCIDO", policy.ActionCatalogRead, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.Allowed(tc.role, tc.action), "%s/%s", tc.role, tc.action)
	}
}

func TestTenant(t *testing.T) {
	id, err := policy.Tenant(policy.Actor{CompanyID: "c1", Role: entity.RoleVendedor})
	assert.NoError(t, err)
	assert.Equal(t, "c1", id)

	_, err = policy.Tenant(policy.Actor{Role: entity.RoleSuperuser})
	assert.ErrorIs(t, err, domain.ErrTenantRequired)
}
