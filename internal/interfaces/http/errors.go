package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhortiz/bodega-scan-api/internal/application/dto"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/pkg/logger"
)

// kindOf traduce un error de dominio a (código máquina, campo del request al
// que aplica). Campo vacío = error general de la operación.
func kindOf(err error) (code, field string) {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		return "SLOT_NOT_FOUND", "slot_code"
	case errors.Is(err, domain.ErrSlotNotEmpty):
		return "SLOT_NOT_EMPTY", "slot_code"
	case errors.Is(err, domain.ErrContainerNotFound):
		return "CONTAINER_NOT_FOUND", "box_code"
	case errors.Is(err, domain.ErrAmbiguousContainerCode):
		return "AMBIGUOUS_CONTAINER_CODE", "box_code"
	case errors.Is(err, domain.ErrAlreadyBoundElsewhere):
		return "ALREADY_BOUND_ELSEWHERE", "box_code"
	case errors.Is(err, domain.ErrNotBound):
		return "NOT_BOUND", "box_code"
	case errors.Is(err, domain.ErrNotInStock):
		return "NOT_IN_STOCK", "box_code"
	case errors.Is(err, domain.ErrNotInProcessingArea):
		return "NOT_IN_PROCESSING_AREA", "box_code"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "CAPACITY_EXCEEDED", "slot_code"
	case errors.Is(err, domain.ErrItemNotFound):
		return "ITEM_NOT_FOUND", "item_code"
	case errors.Is(err, domain.ErrDuplicate):
		return "DUPLICATE", ""
	case errors.Is(err, domain.ErrInvalidInput):
		return "VALIDATION", ""
	default:
		return "", ""
	}
}

// respondOperationError mapea el error de una operación mutadora:
// fallos de validación/estado → 422 con errores por campo; contención de
// concurrencia → 409 (reintentable); el resto → 500 con mensaje genérico
// (el detalle interno solo va al log).
func respondOperationError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CONCURRENCY_CONFLICT", Message: err.Error(),
		})
	}
	if code, field := kindOf(err); code != "" {
		resp := dto.ErrorResponse{Code: code, Message: err.Error()}
		if field != "" {
			resp.Fields = map[string]string{field: err.Error()}
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("operación fallida")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "error interno",
	})
}

// respondLookupError mapea el error de una consulta de validación: cualquier
// fallo de dominio → 400; el resto → 500.
func respondLookupError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if code, _ := kindOf(err); code != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("consulta fallida")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "error interno",
	})
}
