package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateContainersRequest body para POST /api/containers/generate.
type GenerateContainersRequest struct {
	ItemCode string          `json:"item_code"`
	Batch    string          `json:"batch"`
	Expiry   *time.Time      `json:"expiry,omitempty"`
	Quantity decimal.Decimal `json:"quantity"` // unidades por caja
	Count    int             `json:"count"`    // número de cajas a generar
}

// GeneratedContainerDTO una caja recién generada (código listo para imprimir).
type GeneratedContainerDTO struct {
	ContainerID int64  `json:"container_id"`
	Code        string `json:"code"`
	BoxNumber   string `json:"box_number"`
}

// PrintLabelsRequest body para POST /api/containers/labels/pdf.
type PrintLabelsRequest struct {
	ContainerIDs []int64 `json:"container_ids"`
}

// MovementDTO una entrada de la bitácora en el historial de una caja.
type MovementDTO struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	ItemCode   string    `json:"item_code"`
	ItemName   string    `json:"item_name,omitempty"`
	BoxNumber  string    `json:"box_number"`
	FromSlotID *string   `json:"from_slot_id,omitempty"`
	FromArea   string    `json:"from_area,omitempty"`
	ToSlotID   *string   `json:"to_slot_id,omitempty"`
	ToArea     string    `json:"to_area,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OperatorID string    `json:"operator_id"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
