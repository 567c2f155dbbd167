package entity

import "time"

// Tipos de movimiento registrados en la bitácora.
const (
	MovementKindAssign = "assign" // primera vinculación a una ubicación
	MovementKindMove   = "move"   // salida a área simbólica (proceso/despacho)
	MovementKindReturn = "return" // retorno desde área simbólica a stock
)

// Áreas simbólicas: destinos lógicos que no son ubicaciones con capacidad.
const (
	AreaProcessing = "processing"
	AreaShipped    = "shipped"
)

// Destination identifica el origen o destino de un movimiento: una ubicación
// real (SlotID) o un área simbólica (Area). Nunca ambos; puede ser vacío
// (caja recién generada). La ocupación solo se ajusta para la variante Slot.
type Destination struct {
	SlotID *string
	Area   string
}

// SlotDestination construye un destino de ubicación real.
func SlotDestination(slotID string) Destination {
	return Destination{SlotID: &slotID}
}

// AreaDestination construye un destino de área simbólica.
func AreaDestination(code string) Destination {
	return Destination{Area: code}
}

// IsSlot indica si el destino es una ubicación real.
func (d Destination) IsSlot() bool { return d.SlotID != nil }

// IsEmpty indica si no hay origen/destino (caja nunca ubicada).
func (d Destination) IsEmpty() bool { return d.SlotID == nil && d.Area == "" }

// MovementRecord es un hecho inmutable de la bitácora: una caja se movió o se
// vinculó por primera vez. Solo se inserta; nunca se actualiza ni borra, en la
// misma transacción que el cambio de estado que documenta.
type MovementRecord struct {
	ID          string
	ContainerID int64
	// Campos denormalizados para legibilidad de la auditoría.
	ItemCode   string
	ItemName   string
	BoxNumber  string
	From       Destination
	To         Destination
	Kind       string // assign, move, return
	Reason     string
	OperatorID string
	Notes      string
	CreatedAt  time.Time
}
