package dto

import "github.com/shopspring/decimal"

// ValidateSlotRequest body para POST /api/scan/validate-location.
type ValidateSlotRequest struct {
	SlotCode string `json:"slot_code"`
}

// SlotInfoResponse respuesta de validación de ubicación.
type SlotInfoResponse struct {
	SlotCode     string `json:"slot_code"`
	Name         string `json:"name"`
	Building     string `json:"building"`
	Area         string `json:"area,omitempty"`
	Floor        string `json:"floor,omitempty"`
	Capacity     *int   `json:"capacity"`
	CurrentStock int    `json:"current_stock"`
}

// ValidateContainerRequest body para POST /api/scan/validate-box.
type ValidateContainerRequest struct {
	BoxCode string `json:"box_code"`
}

// ContainerInfoResponse respuesta de validación de caja.
type ContainerInfoResponse struct {
	ContainerID  int64           `json:"container_id"`
	Code         string          `json:"code"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	BoxNumber    string          `json:"box_number"`
	Batch        string          `json:"batch"`
	Quantity     decimal.Decimal `json:"quantity"`
	SlotID       *string         `json:"slot_id"`
	BindingState string          `json:"binding_state"`
}

// FirstBindingRequest body para POST /api/scan/first-binding.
type FirstBindingRequest struct {
	SlotCode string `json:"slot_code"`
	BoxCode  string `json:"box_code"`
	Mode     string `json:"mode"` // bind-only | bind-and-stock
	Reason   string `json:"reason,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// FirstBindingResponse respuesta de first-binding.
type FirstBindingResponse struct {
	ContainerID  int64  `json:"container_id"`
	SlotCode     string `json:"slot_code"`
	Mode         string `json:"mode"`
	CurrentStock int    `json:"current_stock"`
	AlreadyBound bool   `json:"already_bound"` // true si fue reintento idempotente
}

// ProcessShippingRequest body para POST /api/scan/process-shipping.
type ProcessShippingRequest struct {
	BoxCode      string `json:"box_code"`
	OutboundType string `json:"outbound_type"` // processing | shipping
	Reason       string `json:"reason,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ProcessShippingResponse respuesta de process-shipping.
type ProcessShippingResponse struct {
	ContainerID  int64  `json:"container_id"`
	FromSlotID   string `json:"from_slot_id"`
	ToArea       string `json:"to_area"`
	OutboundType string `json:"outbound_type"`
}

// ReturnToStockRequest body para POST /api/scan/return-to-stock.
type ReturnToStockRequest struct {
	SlotCode string `json:"slot_code"`
	BoxCode  string `json:"box_code"`
	Reason   string `json:"reason,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// ReturnToStockResponse respuesta de return-to-stock.
type ReturnToStockResponse struct {
	ContainerID int64  `json:"container_id"`
	FromArea    string `json:"from_area"`
	ToSlot      string `json:"to_slot"`
}
