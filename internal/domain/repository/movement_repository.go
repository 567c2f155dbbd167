package repository

import "github.com/jhortiz/bodega-scan-api/internal/domain/entity"

// MovementRepository define el puerto de la bitácora de movimientos.
// Solo expone inserción y lectura: la bitácora es append-only.
type MovementRepository interface {
	Append(record *entity.MovementRecord) error
	// ListByContainer devuelve los movimientos de una caja, del más reciente
	// al más antiguo, con paginación.
	ListByContainer(containerID int64, limit, offset int) ([]*entity.MovementRecord, error)
}
