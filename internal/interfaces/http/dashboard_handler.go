package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Ventas-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del día y del mes en curso.
// GET /api/dashboard/resumen
//
// Respuesta: DashboardSummaryDTO (ventas_hoy, cantidad_ventas_hoy, ventas_mes, compras_mes,
// productos_stock_bajo, top_productos[5], notificaciones_no_leidas).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
