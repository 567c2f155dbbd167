package binding

import (
	"context"
	"time"

	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// vinculación: cambio de estado, ajuste de ocupación y registro en bitácora
// se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		slotRepo repository.SlotRepository,
		containerRepo repository.ContainerRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// Event datos de un evento de dominio emitido tras el commit.
type Event struct {
	ContainerID   int64
	ContainerCode string
	BoxNumber     string
	ItemCode      string
	ItemName      string
	SlotCode      string // vacío en eventos de salida
	Area          string // vacío en eventos de vinculación/retorno
	OperatorID    string
	At            time.Time
}

// Notifier consume los eventos del motor. Se invoca siempre después del
// commit y fuera de la transacción; un fallo de entrega nunca revierte la
// transición de estado.
type Notifier interface {
	OnBound(ev Event)
	OnOutbound(ev Event)
	OnReturned(ev Event)
}

// NopNotifier descarta todos los eventos (notificaciones deshabilitadas).
type NopNotifier struct{}

func (NopNotifier) OnBound(Event)    {}
func (NopNotifier) OnOutbound(Event) {}
func (NopNotifier) OnReturned(Event) {}
