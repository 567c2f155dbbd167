package repository

import "github.com/jhortiz/bodega-scan-api/internal/domain/entity"

// ContainerRepository define el puerto de persistencia para cajas.
// La búsqueda por código acepta el código de escaneo primario o el número de
// caja secundario; si ambos coinciden con cajas distintas devuelve
// domain.ErrAmbiguousContainerCode (fallar cerrado, nunca elegir una).
type ContainerRepository interface {
	GetByCode(code string) (*entity.Container, error)
	// GetByCodeForUpdate bloquea la fila de la caja; toda transición de estado
	// pasa por este bloqueo para linearizar escaneos concurrentes.
	GetByCodeForUpdate(code string) (*entity.Container, error)
	// UpdateBinding escribe estado de vinculación y ubicación de forma atómica.
	UpdateBinding(containerID int64, state string, slotID *string) error
	UpdateLabelStatus(ids []int64, status string) error
	Create(container *entity.Container) error
	GetByIDs(ids []int64) ([]*entity.Container, error)
	// NextBoxNumber devuelve el siguiente número de caja consecutivo para un artículo.
	NextBoxNumber(itemCode string) (int, error)
}
