package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	apphttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Ventas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret      = "test-secret-key-for-unit-tests"
	testUserID         = "00000000-0000-0000-0000-000000000001"
	testCompanyID      = "00000000-0000-0000-0000-000000000002"
	testOtherCompanyID = "00000000-0000-0000-0000-0000000000ff"
	testIssuer         = "ventas-api-test"
	testExpMin         = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireAction para autorizar el acceso según la política
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(action string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireAction(action),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAction
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el rol tiene la acción → HTTP 200.
func TestRequireAction_AdminEscribeCatalogo(t *testing.T) {
	app := buildTestApp(policy.ActionCatalogWrite)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder escribir el catálogo")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, entity.RoleAdmin, body["role"], "el role debe ser ADMIN")
}

// Caso 1b: acción compartida por admin y vendedor → HTTP 200.
func TestRequireAction_VendedorRegistraVenta(t *testing.T) {
	app := buildTestApp(policy.ActionSaleCreate)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleVendedor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"vendedor debe poder registrar ventas")
}

// Caso 2: el rol no tiene la acción → HTTP 403 Forbidden.
func TestRequireAction_VendedorBloqueadoEnCatalogo(t *testing.T) {
	app := buildTestApp(policy.ActionCatalogWrite)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleVendedor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"vendedor no debe poder escribir el catálogo")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 2b: rol desconocido bloqueado incluso en acciones de todos los roles → HTTP 403.
func TestRequireAction_RolDesconocidoBloqueado(t *testing.T) {
	app := buildTestApp(policy.ActionNotificationUse)
	resp := doRequest(t, app, tokenForRole(t, "BODEGUERO"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 3: token sin claim de rol → HTTP 401.
func TestRequireAction_TokenSinRol_Retorna401(t *testing.T) {
	// Token con rol vacío, como uno emitido antes de agregar el claim.
	app := buildTestApp(policy.ActionCatalogRead)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin rol debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE",
		"la respuesta debe indicar el código MISSING_ROLE")
}

// Caso 4: sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireAction_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(policy.ActionCatalogRead)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireAction_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(policy.ActionCatalogRead)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// La matriz completa: el middleware responde lo mismo que policy.Allowed.
func TestRequireAction_SigueLaPolitica(t *testing.T) {
	actions := []string{
		policy.ActionCatalogRead, policy.ActionCatalogWrite, policy.ActionCustomerWrite,
		policy.ActionSaleCreate, policy.ActionSaleRead, policy.ActionSaleVoid,
		policy.ActionPurchaseManage, policy.ActionNotificationUse, policy.ActionDashboardRead,
		policy.ActionUserManage, policy.ActionCompanyManage,
	}
	roles := []string{entity.RoleSuperuser, entity.RoleAdmin, entity.RoleVendedor}
	for _, action := range actions {
		app := buildTestApp(action)
		for _, role := range roles {
			want := http.StatusForbidden
			if policy.Allowed(role, action) {
				want = http.StatusOK
			}
			resp := doRequest(t, app, tokenForRole(t, role))
			resp.Body.Close()
			assert.Equal(t, want, resp.StatusCode, "%s %s", role, action)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

// X-Company-ID solo cambia la empresa efectiva cuando el token es de SUPERUSER.
func TestAuthMiddleware_XCompanyID(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetCompanyID(c))
	})

	cases := []struct {
		name   string
		role   string
		header string
		status int
		want   string
	}{
		{"superuser cambia de empresa", entity.RoleSuperuser, testOtherCompanyID, http.StatusOK, testOtherCompanyID},
		{"admin ignora la cabecera", entity.RoleAdmin, testOtherCompanyID, http.StatusOK, testCompanyID},
		{"vendedor ignora la cabecera", entity.RoleVendedor, testOtherCompanyID, http.StatusOK, testCompanyID},
		{"superuser con cabecera inválida", entity.RoleSuperuser, "otra-empresa", http.StatusBadRequest, "INVALID_COMPANY_ID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", tokenForRole(t, tc.role))
			req.Header.Set(apphttp.HeaderCompanyID, tc.header)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Contains(t, string(body), tc.want)
		})
	}
}
