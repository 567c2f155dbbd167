package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhortiz/bodega-scan-api/internal/application/dto"
	"github.com/jhortiz/bodega-scan-api/internal/application/scan"
	"github.com/jhortiz/bodega-scan-api/pkg/logger"
)

// ScanHandler maneja las peticiones del punto de escaneo (protegido).
type ScanHandler struct {
	uc  *scan.UseCase
	log *logger.Logger
}

// NewScanHandler construye el handler.
func NewScanHandler(uc *scan.UseCase, log *logger.Logger) *ScanHandler {
	return &ScanHandler{uc: uc, log: log}
}

// ValidateLocation godoc
// @Summary      Validar código de ubicación escaneado
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateSlotRequest  true  "slot_code"
// @Success      200   {object}  dto.SlotInfoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scan/validate-location [post]
func (h *ScanHandler) ValidateLocation(c *fiber.Ctx) error {
	var in dto.ValidateSlotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ValidateSlot(c.Context(), in.SlotCode)
	if err != nil {
		return respondLookupError(c, h.log, err)
	}
	return c.JSON(res)
}

// ValidateBox godoc
// @Summary      Validar código de caja escaneado
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateContainerRequest  true  "box_code (código QR o número de caja)"
// @Success      200   {object}  dto.ContainerInfoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scan/validate-box [post]
func (h *ScanHandler) ValidateBox(c *fiber.Ctx) error {
	var in dto.ValidateContainerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ValidateContainer(c.Context(), in.BoxCode)
	if err != nil {
		return respondLookupError(c, h.log, err)
	}
	return c.JSON(res)
}

// FirstBinding godoc
// @Summary      Primera vinculación de una caja a una ubicación
// @Description  mode bind-only vincula sin contar en stock; bind-and-stock
//
//	vincula e incrementa la ocupación de la ubicación.
//
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FirstBindingRequest  true  "slot_code, box_code, mode"
// @Success      200   {object}  dto.FirstBindingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/scan/first-binding [post]
func (h *ScanHandler) FirstBinding(c *fiber.Ctx) error {
	var in dto.FirstBindingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.FirstBinding(c.Context(), GetOperatorID(c), in)
	if err != nil {
		return respondOperationError(c, h.log, err)
	}
	return c.JSON(res)
}

// ProcessShipping godoc
// @Summary      Salida de una caja a proceso o despacho
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessShippingRequest  true  "box_code, outbound_type: processing|shipping"
// @Success      200   {object}  dto.ProcessShippingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/scan/process-shipping [post]
func (h *ScanHandler) ProcessShipping(c *fiber.Ctx) error {
	var in dto.ProcessShippingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ProcessShipping(c.Context(), GetOperatorID(c), in)
	if err != nil {
		return respondOperationError(c, h.log, err)
	}
	return c.JSON(res)
}

// ReturnToStock godoc
// @Summary      Retorno de una caja desde área de proceso a stock
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnToStockRequest  true  "slot_code, box_code"
// @Success      200   {object}  dto.ReturnToStockResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/scan/return-to-stock [post]
func (h *ScanHandler) ReturnToStock(c *fiber.Ctx) error {
	var in dto.ReturnToStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ReturnToStock(c.Context(), GetOperatorID(c), in)
	if err != nil {
		return respondOperationError(c, h.log, err)
	}
	return c.JSON(res)
}
