// Package scan es la capa de intake de escaneos: convierte el par
// (código de ubicación, código de caja) leído por el operario en una llamada
// al motor de vinculación y devuelve el resultado tipado sin reinterpretarlo.
package scan

import (
	"context"

	"github.com/jhortiz/bodega-scan-api/internal/application/binding"
	"github.com/jhortiz/bodega-scan-api/internal/application/dto"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

// UseCase operaciones expuestas al punto de escaneo.
type UseCase struct {
	engine     *binding.Engine
	slots      repository.SlotRepository
	containers repository.ContainerRepository
	items      repository.ItemRepository
	movements  repository.MovementRepository
}

// NewUseCase construye el caso de uso de escaneo.
func NewUseCase(
	engine *binding.Engine,
	slots repository.SlotRepository,
	containers repository.ContainerRepository,
	items repository.ItemRepository,
	movements repository.MovementRepository,
) *UseCase {
	return &UseCase{engine: engine, slots: slots, containers: containers, items: items, movements: movements}
}

// ValidateSlot comprueba que el código pertenezca a una ubicación activa y
// devuelve su resumen (nombre, edificio, capacidad, stock actual).
func (uc *UseCase) ValidateSlot(_ context.Context, code string) (*dto.SlotInfoResponse, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	slot, err := uc.slots.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if slot == nil || !slot.Active {
		return nil, domain.ErrSlotNotFound
	}
	return &dto.SlotInfoResponse{
		SlotCode:     slot.Code,
		Name:         slot.Name,
		Building:     slot.Building,
		Area:         slot.Area,
		Floor:        slot.Floor,
		Capacity:     slot.Capacity,
		CurrentStock: slot.Occupancy,
	}, nil
}

// ValidateContainer comprueba que el código (primario o número de caja)
// identifique exactamente una caja y devuelve su resumen.
func (uc *UseCase) ValidateContainer(_ context.Context, code string) (*dto.ContainerInfoResponse, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	ctr, err := uc.containers.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if ctr == nil {
		return nil, domain.ErrContainerNotFound
	}
	itemName := ""
	if item, err := uc.items.GetByCode(ctr.ItemCode); err == nil && item != nil {
		itemName = item.Name
	}
	return &dto.ContainerInfoResponse{
		ContainerID:  ctr.ID,
		Code:         ctr.Code,
		ItemCode:     ctr.ItemCode,
		ItemName:     itemName,
		BoxNumber:    ctr.BoxNumber,
		Batch:        ctr.Batch,
		Quantity:     ctr.Quantity,
		SlotID:       ctr.SlotID,
		BindingState: ctr.BindingState,
	}, nil
}

// FirstBinding vincula la caja escaneada a la ubicación escaneada.
func (uc *UseCase) FirstBinding(ctx context.Context, operatorID string, in dto.FirstBindingRequest) (*dto.FirstBindingResponse, error) {
	res, err := uc.engine.FirstBind(ctx, binding.FirstBindInput{
		SlotCode:      in.SlotCode,
		ContainerCode: in.BoxCode,
		Mode:          in.Mode,
		OperatorID:    operatorID,
		Reason:        in.Reason,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &dto.FirstBindingResponse{
		ContainerID:  res.ContainerID,
		SlotCode:     res.SlotCode,
		Mode:         res.Mode,
		CurrentStock: res.Occupancy,
		AlreadyBound: !res.Applied,
	}, nil
}

// ProcessShipping saca la caja escaneada a proceso o despacho.
func (uc *UseCase) ProcessShipping(ctx context.Context, operatorID string, in dto.ProcessShippingRequest) (*dto.ProcessShippingResponse, error) {
	res, err := uc.engine.SendOut(ctx, binding.SendOutInput{
		ContainerCode: in.BoxCode,
		OutboundType:  in.OutboundType,
		OperatorID:    operatorID,
		Reason:        in.Reason,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProcessShippingResponse{
		ContainerID:  res.ContainerID,
		FromSlotID:   res.FromSlotID,
		ToArea:       res.ToArea,
		OutboundType: res.OutboundType,
	}, nil
}

// ReturnToStock devuelve a stock la caja escaneada.
func (uc *UseCase) ReturnToStock(ctx context.Context, operatorID string, in dto.ReturnToStockRequest) (*dto.ReturnToStockResponse, error) {
	res, err := uc.engine.ReturnToStock(ctx, binding.ReturnInput{
		SlotCode:      in.SlotCode,
		ContainerCode: in.BoxCode,
		OperatorID:    operatorID,
		Reason:        in.Reason,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ReturnToStockResponse{
		ContainerID: res.ContainerID,
		FromArea:    res.FromArea,
		ToSlot:      res.ToSlotCode,
	}, nil
}

// History devuelve la bitácora de una caja, del movimiento más reciente al
// más antiguo. Se puede reanudar repitiendo la consulta con offset.
func (uc *UseCase) History(_ context.Context, containerCode string, page dto.PageRequest) ([]dto.MovementDTO, error) {
	ctr, err := uc.containers.GetByCode(containerCode)
	if err != nil {
		return nil, err
	}
	if ctr == nil {
		return nil, domain.ErrContainerNotFound
	}
	page.DefaultPage()
	records, err := uc.movements.ListByContainer(ctr.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(records))
	for _, r := range records {
		out = append(out, dto.MovementDTO{
			ID:         r.ID,
			Kind:       r.Kind,
			ItemCode:   r.ItemCode,
			ItemName:   r.ItemName,
			BoxNumber:  r.BoxNumber,
			FromSlotID: r.From.SlotID,
			FromArea:   r.From.Area,
			ToSlotID:   r.To.SlotID,
			ToArea:     r.To.Area,
			Reason:     r.Reason,
			OperatorID: r.OperatorID,
			Notes:      r.Notes,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out, nil
}
