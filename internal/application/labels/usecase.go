// Package labels genera cajas en el momento de crear sus etiquetas QR y
// produce la hoja PDF para imprimirlas. Ciclo de vida de la etiqueta:
// generated → printed → used (used lo marca el motor en la primera vinculación).
package labels

import (
	"context"
	"fmt"
	"time"

	"github.com/jhortiz/bodega-scan-api/internal/application/dto"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

// UseCase generación de cajas y de hojas de etiquetas.
type UseCase struct {
	containers repository.ContainerRepository
	items      repository.ItemRepository
	renderer   LabelRenderer
}

// NewUseCase construye el caso de uso de etiquetas.
func NewUseCase(containers repository.ContainerRepository, items repository.ItemRepository, renderer LabelRenderer) *UseCase {
	return &UseCase{containers: containers, items: items, renderer: renderer}
}

const maxBatchSize = 200

// Generate crea Count cajas nuevas para un artículo con números de caja
// consecutivos y estado de etiqueta "generated". El artículo debe existir en
// el catálogo (aquí la consulta sí es bloqueante: sin artículo no hay caja).
func (uc *UseCase) Generate(_ context.Context, in dto.GenerateContainersRequest) ([]dto.GeneratedContainerDTO, error) {
	if in.ItemCode == "" || in.Batch == "" || in.Count <= 0 || in.Count > maxBatchSize {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.items.GetByCode(in.ItemCode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	next, err := uc.containers.NextBoxNumber(in.ItemCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]dto.GeneratedContainerDTO, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		boxNumber := fmt.Sprintf("%06d", next+i)
		ctr := &entity.Container{
			Code:         fmt.Sprintf("CJ-%s-%s", in.ItemCode, boxNumber),
			BoxNumber:    boxNumber,
			ItemCode:     in.ItemCode,
			Batch:        in.Batch,
			Expiry:       in.Expiry,
			Quantity:     in.Quantity,
			BindingState: entity.BindingUnbound,
			LabelStatus:  entity.LabelGenerated,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.containers.Create(ctr); err != nil {
			return nil, err
		}
		out = append(out, dto.GeneratedContainerDTO{
			ContainerID: ctr.ID,
			Code:        ctr.Code,
			BoxNumber:   ctr.BoxNumber,
		})
	}
	return out, nil
}

// RenderLabels genera la hoja PDF con el QR de cada caja solicitada y marca
// las cajas "printed" (salvo las ya usadas, cuyo estado no retrocede).
func (uc *UseCase) RenderLabels(_ context.Context, ids []int64) ([]byte, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	containers, err := uc.containers.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(containers) == 0 {
		return nil, domain.ErrContainerNotFound
	}

	// Nombre del artículo para el pie de la etiqueta; un artículo ausente en
	// el catálogo no impide imprimir.
	names := map[string]string{}
	data := make([]LabelData, 0, len(containers))
	var toPrint []int64
	for _, c := range containers {
		name, ok := names[c.ItemCode]
		if !ok {
			if item, err := uc.items.GetByCode(c.ItemCode); err == nil && item != nil {
				name = item.Name
			}
			names[c.ItemCode] = name
		}
		expiry := ""
		if c.Expiry != nil {
			expiry = c.Expiry.Format("2006-01-02")
		}
		data = append(data, LabelData{
			Code:      c.Code,
			BoxNumber: c.BoxNumber,
			ItemCode:  c.ItemCode,
			ItemName:  name,
			Batch:     c.Batch,
			Expiry:    expiry,
		})
		if c.LabelStatus == entity.LabelGenerated {
			toPrint = append(toPrint, c.ID)
		}
	}

	pdf, err := uc.renderer.Render(data)
	if err != nil {
		return nil, err
	}
	if len(toPrint) > 0 {
		if err := uc.containers.UpdateLabelStatus(toPrint, entity.LabelPrinted); err != nil {
			return nil, err
		}
	}
	return pdf, nil
}
