package entity

import "time"

// Roles válidos para Operator.
const (
	RoleAdmin    = "admin"
	RoleOperario = "operario"
)

// Operator representa un operario del almacén. Toda operación mutadora del
// motor se atribuye a un Operator; no existe un operario "sistema" implícito.
type Operator struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca en plano después de persistir
	Name         string
	Role         string // admin, operario
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
