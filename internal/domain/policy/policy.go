// Package policy concentra la autorización multi-tenant: quién puede hacer qué y sobre qué empresa.
// Los casos de uso llaman CanAccess al cargar un recurso por ID; el router llama Allowed por grupo de rutas.
package policy

import (
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Actor es el usuario autenticado que ejecuta una operación.
// CompanyID es la empresa efectiva (para SUPERUSER puede venir de X-Company-ID).
type Actor struct {
	UserID    string
	CompanyID string
	Role      string
}

// IsSuperuser indica si el actor no está restringido a su empresa.
func (a Actor) IsSuperuser() bool {
	return a.Role == entity.RoleSuperuser
}

// Acciones protegidas.
const (
	ActionCatalogRead     = "catalog:read"
	ActionCatalogWrite    = "catalog:write"
	ActionCustomerWrite   = "customer:write"
	ActionSaleCreate      = "sale:create"
	ActionSaleRead        = "sale:read"
	ActionSaleVoid        = "sale:void"
	ActionPurchaseManage  = "purchase:manage"
	ActionNotificationUse = "notification:use"
	ActionDashboardRead   = "dashboard:read"
	ActionUserManage      = "user:manage"
	ActionCompanyManage   = "company:manage"
)

var matrix = map[string][]string{
	entity.RoleAdmin: {
		ActionCatalogRead, ActionCatalogWrite, ActionCustomerWrite,
		ActionSaleCreate, ActionSaleRead, ActionSaleVoid,
		ActionPurchaseManage, ActionNotificationUse, ActionDashboardRead, ActionUserManage,
	},
	entity.RoleVendedor: {
		ActionCatalogRead, ActionCustomerWrite,
		ActionSaleCreate, ActionSaleRead, ActionNotificationUse,
	},
}

// Allowed indica si role puede ejecutar action. SUPERUSER puede todo.
func Allowed(role, action string) bool {
	if role == entity.RoleSuperuser {
		return true
	}
	for _, a := range matrix[role] {
		if a == action {
			return true
		}
	}
	return false
}

// CanAccess indica si el actor puede operar sobre un recurso de resourceCompanyID.
func CanAccess(actor Actor, resourceCompanyID string) bool {
	if actor.IsSuperuser() {
		return true
	}
	return actor.CompanyID != "" && actor.CompanyID == resourceCompanyID
}

// Tenant devuelve la empresa sobre la que opera el actor.
// Un SUPERUSER sin empresa seleccionada no puede crear ni listar documentos.
func Tenant(actor Actor) (string, error) {
	if actor.CompanyID == "" {
		return "", domain.ErrTenantRequired
	}
	return actor.CompanyID, nil
}
