package binding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

// Modos de FirstBind.
const (
	ModeBindOnly     = "bind-only"      // vincular sin contar en stock
	ModeBindAndStock = "bind-and-stock" // vincular y contar en la ocupación
)

// Tipos de salida de SendOut.
const (
	OutboundProcessing = "processing"
	OutboundShipping   = "shipping"
)

// Engine es el motor de vinculación: valida la transición solicitada contra el
// estado actual de caja y ubicación, la aplica junto con el ajuste de
// ocupación y el registro en bitácora dentro de una sola transacción
// (bloqueo de fila vía FOR UPDATE) y emite el evento de dominio tras el commit.
//
// Invariante central: la ocupación de cada ubicación es siempre igual al
// número de cajas bound_in_stock vinculadas a ella, también tras un rollback.
type Engine struct {
	txRunner   TxRunner
	containers repository.ContainerRepository
	items      repository.ItemRepository
	notifier   Notifier
}

// NewEngine construye el motor. notifier puede ser NopNotifier.
func NewEngine(txRunner TxRunner, containers repository.ContainerRepository, items repository.ItemRepository, notifier Notifier) *Engine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Engine{txRunner: txRunner, containers: containers, items: items, notifier: notifier}
}

// FirstBindInput entrada de la primera vinculación de una caja a una ubicación.
type FirstBindInput struct {
	SlotCode      string
	ContainerCode string
	Mode          string // bind-only | bind-and-stock
	OperatorID    string
	Reason        string
	Notes         string
}

// FirstBindResult resultado de FirstBind.
type FirstBindResult struct {
	ContainerID int64
	SlotCode    string
	Mode        string
	Occupancy   int  // ocupación de la ubicación tras la operación
	Applied     bool // false si fue un reintento idempotente sin cambios
}

// FirstBind vincula una caja a una ubicación. Reintentar con los mismos
// argumentos sobre una caja ya vinculada a esa misma ubicación es un éxito
// sin efectos (sin doble incremento ni entrada duplicada en bitácora); una
// caja vinculada a otra ubicación falla con ErrAlreadyBoundElsewhere.
func (e *Engine) FirstBind(ctx context.Context, in FirstBindInput) (*FirstBindResult, error) {
	if in.SlotCode == "" || in.ContainerCode == "" || in.OperatorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Mode != ModeBindOnly && in.Mode != ModeBindAndStock {
		return nil, domain.ErrInvalidInput
	}

	itemName := e.resolveItemName(in.ContainerCode)

	var res FirstBindResult
	var ev Event
	err := e.txRunner.Run(ctx, func(
		slotRepo repository.SlotRepository,
		containerRepo repository.ContainerRepository,
		movementRepo repository.MovementRepository,
	) error {
		// Orden de bloqueo fijo (caja, luego ubicación) para evitar deadlocks.
		ctr, err := containerRepo.GetByCodeForUpdate(in.ContainerCode)
		if err != nil {
			return err
		}
		if ctr == nil {
			return domain.ErrContainerNotFound
		}
		slot, err := slotRepo.GetByCodeForUpdate(in.SlotCode)
		if err != nil {
			return err
		}
		if slot == nil || !slot.Active {
			return domain.ErrSlotNotFound
		}
		if ctr.SlotID != nil && *ctr.SlotID != slot.ID {
			return domain.ErrAlreadyBoundElsewhere
		}

		boundHere := ctr.SlotID != nil
		res = FirstBindResult{ContainerID: ctr.ID, SlotCode: slot.Code, Mode: in.Mode, Occupancy: slot.Occupancy}

		// Reintento idempotente: el estado final pedido ya está en pie.
		if boundHere && (in.Mode == ModeBindOnly || ctr.BindingState == entity.BindingInStock) {
			return nil
		}

		newState := entity.BindingPending
		if in.Mode == ModeBindAndStock {
			newState = entity.BindingInStock
			occ, err := slotRepo.AdjustOccupancy(slot.ID, +1)
			if err != nil {
				return err
			}
			res.Occupancy = occ
		}
		if err := containerRepo.UpdateBinding(ctr.ID, newState, &slot.ID); err != nil {
			return err
		}
		if ctr.LabelStatus != entity.LabelUsed {
			if err := containerRepo.UpdateLabelStatus([]int64{ctr.ID}, entity.LabelUsed); err != nil {
				return err
			}
		}

		now := time.Now()
		rec := &entity.MovementRecord{
			ID:          uuid.New().String(),
			ContainerID: ctr.ID,
			ItemCode:    ctr.ItemCode,
			ItemName:    itemName,
			BoxNumber:   ctr.BoxNumber,
			From:        entity.Destination{},
			To:          entity.SlotDestination(slot.ID),
			Kind:        entity.MovementKindAssign,
			Reason:      in.Reason,
			OperatorID:  in.OperatorID,
			Notes:       in.Notes,
			CreatedAt:   now,
		}
		if err := movementRepo.Append(rec); err != nil {
			return err
		}

		res.Applied = true
		ev = Event{
			ContainerID:   ctr.ID,
			ContainerCode: ctr.Code,
			BoxNumber:     ctr.BoxNumber,
			ItemCode:      ctr.ItemCode,
			ItemName:      itemName,
			SlotCode:      slot.Code,
			OperatorID:    in.OperatorID,
			At:            now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.Applied {
		e.notifier.OnBound(ev)
	}
	return &res, nil
}

// SendOutInput entrada de la salida de una caja a un área simbólica.
type SendOutInput struct {
	ContainerCode string
	OutboundType  string // processing | shipping
	OperatorID    string
	Reason        string
	Notes         string
}

// SendOutResult resultado de SendOut.
type SendOutResult struct {
	ContainerID  int64
	FromSlotID   string
	FromSlotCode string
	ToArea       string
	OutboundType string
}

// SendOut saca una caja en stock hacia el área de proceso o despacho:
// limpia la vinculación, decrementa la ocupación de la ubicación de origen
// (con piso en 0) y registra el movimiento, todo en la misma transacción.
func (e *Engine) SendOut(ctx context.Context, in SendOutInput) (*SendOutResult, error) {
	if in.ContainerCode == "" || in.OperatorID == "" {
		return nil, domain.ErrInvalidInput
	}
	var newState, area string
	switch in.OutboundType {
	case OutboundProcessing:
		newState, area = entity.BindingProcessing, entity.AreaProcessing
	case OutboundShipping:
		newState, area = entity.BindingShipped, entity.AreaShipped
	default:
		return nil, domain.ErrInvalidInput
	}

	itemName := e.resolveItemName(in.ContainerCode)

	var res SendOutResult
	var ev Event
	err := e.txRunner.Run(ctx, func(
		slotRepo repository.SlotRepository,
		containerRepo repository.ContainerRepository,
		movementRepo repository.MovementRepository,
	) error {
		ctr, err := containerRepo.GetByCodeForUpdate(in.ContainerCode)
		if err != nil {
			return err
		}
		if ctr == nil {
			return domain.ErrContainerNotFound
		}
		if ctr.SlotID == nil {
			return domain.ErrNotBound
		}
		if ctr.BindingState != entity.BindingInStock {
			return domain.ErrNotInStock
		}
		slot, err := slotRepo.GetByIDForUpdate(*ctr.SlotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return domain.ErrSlotNotFound
		}
		if _, err := slotRepo.AdjustOccupancy(slot.ID, -1); err != nil {
			return err
		}
		if err := containerRepo.UpdateBinding(ctr.ID, newState, nil); err != nil {
			return err
		}

		now := time.Now()
		rec := &entity.MovementRecord{
			ID:          uuid.New().String(),
			ContainerID: ctr.ID,
			ItemCode:    ctr.ItemCode,
			ItemName:    itemName,
			BoxNumber:   ctr.BoxNumber,
			From:        entity.SlotDestination(slot.ID),
			To:          entity.AreaDestination(area),
			Kind:        entity.MovementKindMove,
			Reason:      in.Reason,
			OperatorID:  in.OperatorID,
			Notes:       in.Notes,
			CreatedAt:   now,
		}
		if err := movementRepo.Append(rec); err != nil {
			return err
		}

		res = SendOutResult{
			ContainerID:  ctr.ID,
			FromSlotID:   slot.ID,
			FromSlotCode: slot.Code,
			ToArea:       area,
			OutboundType: in.OutboundType,
		}
		ev = Event{
			ContainerID:   ctr.ID,
			ContainerCode: ctr.Code,
			BoxNumber:     ctr.BoxNumber,
			ItemCode:      ctr.ItemCode,
			ItemName:      itemName,
			Area:          area,
			OperatorID:    in.OperatorID,
			At:            now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.notifier.OnOutbound(ev)
	return &res, nil
}

// ReturnInput entrada del retorno de una caja a stock.
type ReturnInput struct {
	SlotCode      string
	ContainerCode string
	OperatorID    string
	Reason        string
	Notes         string
}

// ReturnResult resultado de ReturnToStock.
type ReturnResult struct {
	ContainerID int64
	FromArea    string // vacío si la caja nunca estuvo en un área simbólica
	ToSlotCode  string
	Occupancy   int
}

// ReturnToStock devuelve a una ubicación una caja que está en un área
// simbólica (sin vinculación). Una caja todavía vinculada a una ubicación
// real no puede "retornar" y falla con ErrNotInProcessingArea.
func (e *Engine) ReturnToStock(ctx context.Context, in ReturnInput) (*ReturnResult, error) {
	if in.SlotCode == "" || in.ContainerCode == "" || in.OperatorID == "" {
		return nil, domain.ErrInvalidInput
	}

	itemName := e.resolveItemName(in.ContainerCode)

	var res ReturnResult
	var ev Event
	err := e.txRunner.Run(ctx, func(
		slotRepo repository.SlotRepository,
		containerRepo repository.ContainerRepository,
		movementRepo repository.MovementRepository,
	) error {
		ctr, err := containerRepo.GetByCodeForUpdate(in.ContainerCode)
		if err != nil {
			return err
		}
		if ctr == nil {
			return domain.ErrContainerNotFound
		}
		if ctr.SlotID != nil {
			return domain.ErrNotInProcessingArea
		}
		slot, err := slotRepo.GetByCodeForUpdate(in.SlotCode)
		if err != nil {
			return err
		}
		if slot == nil || !slot.Active {
			return domain.ErrSlotNotFound
		}

		from := entity.Destination{}
		switch ctr.BindingState {
		case entity.BindingProcessing:
			from = entity.AreaDestination(entity.AreaProcessing)
		case entity.BindingShipped:
			from = entity.AreaDestination(entity.AreaShipped)
		}

		occ, err := slotRepo.AdjustOccupancy(slot.ID, +1)
		if err != nil {
			return err
		}
		if err := containerRepo.UpdateBinding(ctr.ID, entity.BindingInStock, &slot.ID); err != nil {
			return err
		}

		now := time.Now()
		rec := &entity.MovementRecord{
			ID:          uuid.New().String(),
			ContainerID: ctr.ID,
			ItemCode:    ctr.ItemCode,
			ItemName:    itemName,
			BoxNumber:   ctr.BoxNumber,
			From:        from,
			To:          entity.SlotDestination(slot.ID),
			Kind:        entity.MovementKindReturn,
			Reason:      in.Reason,
			OperatorID:  in.OperatorID,
			Notes:       in.Notes,
			CreatedAt:   now,
		}
		if err := movementRepo.Append(rec); err != nil {
			return err
		}

		res = ReturnResult{ContainerID: ctr.ID, FromArea: from.Area, ToSlotCode: slot.Code, Occupancy: occ}
		ev = Event{
			ContainerID:   ctr.ID,
			ContainerCode: ctr.Code,
			BoxNumber:     ctr.BoxNumber,
			ItemCode:      ctr.ItemCode,
			ItemName:      itemName,
			SlotCode:      slot.Code,
			OperatorID:    in.OperatorID,
			At:            now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.notifier.OnReturned(ev)
	return &res, nil
}

// resolveItemName consulta el catálogo para denormalizar el nombre del
// artículo en la bitácora. Es best-effort: cualquier fallo degrada a vacío
// y nunca bloquea la operación (por eso ocurre fuera de la transacción).
func (e *Engine) resolveItemName(containerCode string) string {
	ctr, err := e.containers.GetByCode(containerCode)
	if err != nil || ctr == nil {
		return ""
	}
	item, err := e.items.GetByCode(ctr.ItemCode)
	if err != nil || item == nil {
		return ""
	}
	return item.Name
}
