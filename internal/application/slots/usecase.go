package slots

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhortiz/bodega-scan-api/internal/application/dto"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

// UseCase administración mínima de ubicaciones. La ocupación nunca se toca
// aquí: es propiedad exclusiva del motor de vinculación.
type UseCase struct {
	slots repository.SlotRepository
}

// NewUseCase construye el caso de uso de ubicaciones.
func NewUseCase(slots repository.SlotRepository) *UseCase {
	return &UseCase{slots: slots}
}

// Create registra una ubicación nueva con ocupación cero.
func (uc *UseCase) Create(in dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Capacity != nil && *in.Capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	slot := &entity.Slot{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Building:  in.Building,
		Area:      in.Area,
		Floor:     in.Floor,
		Capacity:  in.Capacity,
		Occupancy: 0,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.slots.Create(slot); err != nil {
		return nil, err
	}
	return toSlotResponse(slot), nil
}

// GetByCode devuelve una ubicación por su código.
func (uc *UseCase) GetByCode(code string) (*dto.SlotResponse, error) {
	slot, err := uc.slots.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, domain.ErrSlotNotFound
	}
	return toSlotResponse(slot), nil
}

// List lista ubicaciones con paginación.
func (uc *UseCase) List(page dto.PageRequest) ([]dto.SlotResponse, error) {
	page.DefaultPage()
	list, err := uc.slots.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SlotResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSlotResponse(s))
	}
	return out, nil
}

// Delete elimina una ubicación sin cajas en stock.
func (uc *UseCase) Delete(code string) error {
	slot, err := uc.slots.GetByCode(code)
	if err != nil {
		return err
	}
	if slot == nil {
		return domain.ErrSlotNotFound
	}
	return uc.slots.Delete(slot.ID)
}

func toSlotResponse(s *entity.Slot) *dto.SlotResponse {
	return &dto.SlotResponse{
		ID:           s.ID,
		Code:         s.Code,
		Name:         s.Name,
		Building:     s.Building,
		Area:         s.Area,
		Floor:        s.Floor,
		Capacity:     s.Capacity,
		CurrentStock: s.Occupancy,
		Active:       s.Active,
	}
}
