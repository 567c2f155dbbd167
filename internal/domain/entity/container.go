package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de vinculación de una caja.
const (
	BindingUnbound    = "unbound"        // generada, nunca ubicada
	BindingPending    = "bound_pending"  // vinculada a ubicación, aún no contada en stock
	BindingInStock    = "bound_in_stock" // vinculada y contada en la ocupación de la ubicación
	BindingProcessing = "in_processing"  // en área de proceso (sin ubicación)
	BindingShipped    = "shipped"        // despachada (sin ubicación)
)

// Estados del ciclo de vida de la etiqueta (ortogonal al estado de vinculación).
const (
	LabelGenerated = "generated"
	LabelPrinted   = "printed"
	LabelUsed      = "used"
)

// Container representa una caja de mercancía identificada por un código QR único.
// Invariante: SlotID es no-nulo si y solo si BindingState es bound_pending o
// bound_in_stock. Solo el motor de vinculación muta SlotID y BindingState.
type Container struct {
	ID           int64  // id interno numérico
	Code         string // código de escaneo único, inmutable
	BoxNumber    string // número de caja legible, secundario (también escaneable)
	ItemCode     string
	Batch        string
	Expiry       *time.Time
	Quantity     decimal.Decimal // unidades contenidas en la caja
	BindingState string
	SlotID       *string
	SubLevel     string // piso/estante dentro de la ubicación (opcional)
	LabelStatus  string // generated, printed, used
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBound indica si la caja está vinculada a una ubicación real.
func (c *Container) IsBound() bool {
	return c.SlotID != nil
}

// InSymbolicArea indica si la caja está en un área simbólica (proceso o despacho).
func (c *Container) InSymbolicArea() bool {
	return c.BindingState == BindingProcessing || c.BindingState == BindingShipped
}
