package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de la bitácora sobre PostgreSQL (usable con pool o tx).
// La tabla movements solo recibe INSERT; no existe UPDATE ni DELETE en este
// adaptador ni en el esquema (trigger de protección en la migración).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de la bitácora. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste un movimiento.
func (r *MovementRepo) Append(m *entity.MovementRecord) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, container_id, item_code, item_name, box_number,
			from_slot_id, from_area, to_slot_id, to_area, kind, reason, operator_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	fromArea := nullIfEmpty(m.From.Area)
	toArea := nullIfEmpty(m.To.Area)
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ContainerID, m.ItemCode, m.ItemName, m.BoxNumber,
		m.From.SlotID, fromArea, m.To.SlotID, toArea,
		m.Kind, m.Reason, m.OperatorID, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// ListByContainer lista los movimientos de una caja, el más reciente primero.
func (r *MovementRepo) ListByContainer(containerID int64, limit, offset int) ([]*entity.MovementRecord, error) {
	query := `
		SELECT id, container_id, item_code, item_name, box_number,
			from_slot_id, from_area, to_slot_id, to_area, kind, reason, operator_id, notes, created_at
		FROM movements WHERE container_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, containerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementRecord
	for rows.Next() {
		var m entity.MovementRecord
		var fromArea, toArea *string
		if err := rows.Scan(&m.ID, &m.ContainerID, &m.ItemCode, &m.ItemName, &m.BoxNumber,
			&m.From.SlotID, &fromArea, &m.To.SlotID, &toArea,
			&m.Kind, &m.Reason, &m.OperatorID, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if fromArea != nil {
			m.From.Area = *fromArea
		}
		if toArea != nil {
			m.To.Area = *toArea
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
