package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/documents"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
)

// SaleHandler ventas y sus documentos (PDF, XML).
type SaleHandler struct {
	uc   *sales.SaleUseCase
	docs *documents.DocumentUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, docs *documents.DocumentUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, docs: docs}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock, asigna el correlativo V-NNNNNN y emite avisos de stock bajo o agotado en la misma transacción.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Cliente opcional, método de pago y productos"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse  "validación, stock insuficiente o producto inactivo"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "COMPLETADA | ANULADA"
// @Param        desde   query  string  false  "YYYY-MM-DD"
// @Param        hasta   query  string  false  "YYYY-MM-DD"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.DocumentListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), Actor(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con su detalle
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), Actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Void godoc
// @Summary      Anular venta
// @Description  Devuelve el stock de cada línea. Una venta anulada no se puede volver a anular.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.VoidSaleRequest  false  "Motivo"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse  "venta ya anulada"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/anular [patch]
func (h *SaleHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidSaleRequest
	if len(c.Body()) > 0 {
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
	}
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Void(c.UserContext(), Actor(c), id, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Comprobante de venta en PDF
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/pdf [get]
func (h *SaleHandler) PDF(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.docs.SalePDF(c.UserContext(), Actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, data, filename, "application/pdf")
}

// XML godoc
// @Summary      Comprobante de venta en XML (UBL 2.1)
// @Description  Incluye un digest SHA-256 del documento canonicalizado.
// @Tags         ventas
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "venta anulada"
// @Router       /api/ventas/{id}/xml [get]
func (h *SaleHandler) XML(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.docs.SaleXML(c.UserContext(), Actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, data, filename, "application/xml")
}

func sendFile(c *fiber.Ctx, data []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
