package repository

import "github.com/jhortiz/bodega-scan-api/internal/domain/entity"

// ItemRepository es el puerto de solo lectura hacia el catálogo de artículos
// (colaborador externo). Su fallo durante un movimiento no debe bloquear la
// operación: el motor degrada a campos denormalizados vacíos.
type ItemRepository interface {
	GetByCode(code string) (*entity.Item, error)
}
