package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El motor de vinculación devuelve siempre uno de estos valores; la capa HTTP
// los traduce a códigos de estado con errors.Is.
var (
	ErrSlotNotFound           = errors.New("ubicación no encontrada o inactiva")
	ErrContainerNotFound      = errors.New("caja no encontrada")
	ErrAmbiguousContainerCode = errors.New("el código coincide con más de una caja")
	ErrAlreadyBoundElsewhere  = errors.New("la caja ya está vinculada a otra ubicación")
	ErrNotBound               = errors.New("la caja no está vinculada a ninguna ubicación")
	ErrNotInStock             = errors.New("la caja no está en stock")
	ErrNotInProcessingArea    = errors.New("la caja no está en el área de proceso")
	ErrCapacityExceeded       = errors.New("capacidad de la ubicación excedida")
	ErrConcurrencyConflict    = errors.New("conflicto de concurrencia, reintentar la operación")
	ErrSlotNotEmpty           = errors.New("la ubicación tiene cajas en stock")
	ErrItemNotFound           = errors.New("artículo no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrOperatorNotFound       = errors.New("operario no encontrado")
	ErrUnauthorized           = errors.New("no autorizado")
)
