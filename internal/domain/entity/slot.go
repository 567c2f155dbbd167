package entity

import "time"

// Slot representa una ubicación física de almacenamiento con capacidad acotada.
// Occupancy es estado derivado: cuenta las cajas BOUND_IN_STOCK vinculadas a la
// ubicación y solo lo muta el motor de vinculación dentro de su transacción.
type Slot struct {
	ID        string
	Code      string // código legible único, inmutable (el que se escanea)
	Name      string
	Building  string
	Area      string
	Floor     string
	Capacity  *int // nil = sin tope
	Occupancy int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRoom indica si cabe una caja más según la capacidad configurada.
func (s *Slot) HasRoom() bool {
	return s.Capacity == nil || s.Occupancy < *s.Capacity
}
