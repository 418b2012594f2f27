package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/portal"
)

// PortalHandler vitrina pública por slug de empresa (sin autenticación).
type PortalHandler struct {
	uc *portal.PortalUseCase
}

// NewPortalHandler construye el handler.
func NewPortalHandler(uc *portal.PortalUseCase) *PortalHandler {
	return &PortalHandler{uc: uc}
}

// Company godoc
// @Summary      Datos públicos de la empresa
// @Tags         portal
// @Produce      json
// @Param        slug  path  string  true  "Slug de la empresa"
// @Success      200   {object}  dto.PortalCompanyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/portal/{slug} [get]
func (h *PortalHandler) Company(c *fiber.Ctx) error {
	out, err := h.uc.Company(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Catalog godoc
// @Summary      Catálogo público de productos activos
// @Tags         portal
// @Produce      json
// @Param        slug  path  string  true  "Slug de la empresa"
// @Success      200   {object}  dto.PortalCatalogResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/portal/{slug}/productos [get]
func (h *PortalHandler) Catalog(c *fiber.Ctx) error {
	out, err := h.uc.Catalog(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
