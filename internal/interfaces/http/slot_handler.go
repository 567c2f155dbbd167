package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhortiz/bodega-scan-api/internal/application/dto"
	"github.com/jhortiz/bodega-scan-api/internal/application/slots"
	"github.com/jhortiz/bodega-scan-api/pkg/logger"
)

// SlotHandler maneja la administración mínima de ubicaciones (protegido, admin).
type SlotHandler struct {
	uc  *slots.UseCase
	log *logger.Logger
}

// NewSlotHandler construye el handler.
func NewSlotHandler(uc *slots.UseCase, log *logger.Logger) *SlotHandler {
	return &SlotHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         slots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSlotRequest  true  "code, name, building, capacity"
// @Success      201   {object}  dto.SlotResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/slots [post]
func (h *SlotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSlotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Create(in)
	if err != nil {
		return respondOperationError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         slots
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SlotResponse
// @Router       /api/slots [get]
func (h *SlotHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.uc.List(page)
	if err != nil {
		return respondLookupError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "slots": list})
}

// GetByCode godoc
// @Summary      Detalle de una ubicación
// @Tags         slots
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código de ubicación"
// @Success      200  {object}  dto.SlotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/slots/{code} [get]
func (h *SlotHandler) GetByCode(c *fiber.Ctx) error {
	res, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return respondLookupError(c, h.log, err)
	}
	return c.JSON(res)
}

// Delete godoc
// @Summary      Eliminar una ubicación sin cajas en stock
// @Tags         slots
// @Security     Bearer
// @Param        code  path  string  true  "código de ubicación"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/slots/{code} [delete]
func (h *SlotHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("code")); err != nil {
		return respondOperationError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
