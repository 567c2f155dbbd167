package dto

// CreateSlotRequest body para POST /api/slots.
type CreateSlotRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Area     string `json:"area,omitempty"`
	Floor    string `json:"floor,omitempty"`
	Capacity *int   `json:"capacity"`
}

// SlotResponse representación de una ubicación en listados y detalle.
type SlotResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Building     string `json:"building"`
	Area         string `json:"area,omitempty"`
	Floor        string `json:"floor,omitempty"`
	Capacity     *int   `json:"capacity"`
	CurrentStock int    `json:"current_stock"`
	Active       bool   `json:"active"`
}
