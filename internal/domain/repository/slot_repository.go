package repository

import "github.com/jhortiz/bodega-scan-api/internal/domain/entity"

// SlotRepository define el puerto de persistencia para ubicaciones.
// Las variantes ForUpdate bloquean la fila (SELECT FOR UPDATE) y se usan
// dentro de la transacción del motor de vinculación.
type SlotRepository interface {
	GetByCode(code string) (*entity.Slot, error)
	GetByCodeForUpdate(code string) (*entity.Slot, error)
	GetByIDForUpdate(id string) (*entity.Slot, error)
	// AdjustOccupancy suma delta a la ocupación y devuelve el nuevo valor.
	// Nunca baja de 0; si delta positivo supera la capacidad devuelve
	// domain.ErrCapacityExceeded sin modificar nada.
	AdjustOccupancy(slotID string, delta int) (int, error)
	Create(slot *entity.Slot) error
	List(limit, offset int) ([]*entity.Slot, error)
	// Delete elimina la ubicación; devuelve domain.ErrSlotNotEmpty si su
	// ocupación es mayor que cero.
	Delete(id string) error
}
