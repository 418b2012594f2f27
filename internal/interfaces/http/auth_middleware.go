package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
)

// Locals keys para UserID, CompanyID y Role en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
)

// HeaderCompanyID permite a un SUPERUSER operar sobre otra empresa.
const HeaderCompanyID = "X-Company-ID"

// AuthMiddleware valida el Bearer Token JWT y carga UserID, CompanyID y Role en c.Locals.
// Para SUPERUSER, X-Company-ID (si viene) reemplaza la empresa del token.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if claims.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene rol"})
		}

		companyID := claims.CompanyID
		if claims.Role == entity.RoleSuperuser {
			if override := strings.TrimSpace(c.Get(HeaderCompanyID)); override != "" {
				if uuid.Validate(override) != nil {
					return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_COMPANY_ID", Message: HeaderCompanyID + " debe ser un UUID"})
				}
				companyID = override
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalCompanyID, companyID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireAction corta con 403 si el rol del usuario no tiene permiso para action.
// Debe ir después de AuthMiddleware.
func RequireAction(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !policy.Allowed(GetRole(c), action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "tu rol no permite esta operación"})
		}
		return c.Next()
	}
}

// Actor arma el actor de la política a partir de los locals del request.
func Actor(c *fiber.Ctx) policy.Actor {
	return policy.Actor{
		UserID:    GetUserID(c),
		CompanyID: GetCompanyID(c),
		Role:      GetRole(c),
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetCompanyID devuelve la empresa efectiva del request.
func GetCompanyID(c *fiber.Ctx) string {
	return localString(c, LocalCompanyID)
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
