package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhortiz/bodega-scan-api/internal/application/dto"
	"github.com/jhortiz/bodega-scan-api/internal/application/labels"
	"github.com/jhortiz/bodega-scan-api/internal/application/scan"
	"github.com/jhortiz/bodega-scan-api/pkg/logger"
)

// ContainerHandler maneja generación de cajas, impresión de etiquetas e
// historial de movimientos (protegido).
type ContainerHandler struct {
	labels *labels.UseCase
	scan   *scan.UseCase
	log    *logger.Logger
}

// NewContainerHandler construye el handler.
func NewContainerHandler(labelsUC *labels.UseCase, scanUC *scan.UseCase, log *logger.Logger) *ContainerHandler {
	return &ContainerHandler{labels: labelsUC, scan: scanUC, log: log}
}

// Generate godoc
// @Summary      Generar cajas nuevas con su código QR
// @Tags         containers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateContainersRequest  true  "item_code, batch, quantity, count"
// @Success      201   {array}   dto.GeneratedContainerDTO
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/containers/generate [post]
func (h *ContainerHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateContainersRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.labels.Generate(c.Context(), in)
	if err != nil {
		return respondOperationError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PrintLabels godoc
// @Summary      Hoja PDF de etiquetas QR para un grupo de cajas
// @Tags         containers
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.PrintLabelsRequest  true  "container_ids"
// @Success      200   {file}    binary
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/containers/labels/pdf [post]
func (h *ContainerHandler) PrintLabels(c *fiber.Ctx) error {
	var in dto.PrintLabelsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdf, err := h.labels.RenderLabels(c.Context(), in.ContainerIDs)
	if err != nil {
		return respondOperationError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="etiquetas.pdf"`)
	return c.Send(pdf)
}

// History godoc
// @Summary      Historial de movimientos de una caja (más reciente primero)
// @Tags         containers
// @Security     Bearer
// @Produce      json
// @Param        code    path   string  true   "código de escaneo o número de caja"
// @Param        limit   query  int     false  "máximo de registros (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/containers/{code}/history [get]
func (h *ContainerHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.scan.History(c.Context(), c.Params("code"), page)
	if err != nil {
		return respondLookupError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}
