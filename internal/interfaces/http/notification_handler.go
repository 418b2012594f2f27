package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/notification"
)

// NotificationHandler bandeja de avisos de la empresa.
type NotificationHandler struct {
	uc *notification.InboxUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.InboxUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificaciones
// @Tags         notificaciones
// @Security     Bearer
// @Produce      json
// @Param        no_leidas  query  bool  false  "Solo no leídas"
// @Param        limit      query  int   false  "Límite"  default(20)
// @Param        offset     query  int   false  "Offset"  default(0)
// @Success      200        {object}  dto.NotificationListResponse
// @Router       /api/notificaciones [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := bindQuery(c, &page); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), Actor(c), c.QueryBool("no_leidas", false), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Unread godoc
// @Summary      Cantidad de notificaciones no leídas
// @Tags         notificaciones
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/notificaciones/no-leidas [get]
func (h *NotificationHandler) Unread(c *fiber.Ctx) error {
	n, err := h.uc.CountUnread(c.UserContext(), Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"no_leidas": n})
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notificaciones
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notificaciones/{id}/leer [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err = h.uc.MarkRead(c.UserContext(), Actor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notificaciones
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/notificaciones/leer-todas [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.UserContext(), Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"actualizadas": n})
}
