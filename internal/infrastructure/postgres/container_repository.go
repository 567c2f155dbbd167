package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

var _ repository.ContainerRepository = (*ContainerRepo)(nil)

// ContainerRepo implementación de ContainerRepository sobre PostgreSQL (usable con pool o tx).
type ContainerRepo struct {
	q Querier
}

// NewContainerRepository construye el adaptador de cajas. Pasar pool o tx (Querier).
func NewContainerRepository(q Querier) *ContainerRepo {
	return &ContainerRepo{q: q}
}

const containerColumns = `id, code, box_number, item_code, batch, expiry, quantity, binding_state, slot_id, sub_level, label_status, created_at, updated_at`

func scanContainers(rows pgx.Rows) ([]*entity.Container, error) {
	defer rows.Close()
	var list []*entity.Container
	for rows.Next() {
		var c entity.Container
		if err := rows.Scan(&c.ID, &c.Code, &c.BoxNumber, &c.ItemCode, &c.Batch, &c.Expiry,
			&c.Quantity, &c.BindingState, &c.SlotID, &c.SubLevel, &c.LabelStatus,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// getByCode busca por código primario o número de caja. Si el código coincide
// con más de una caja la búsqueda es ambigua y falla cerrada: nunca se elige
// una en silencio.
func (r *ContainerRepo) getByCode(code, lockClause string) (*entity.Container, error) {
	query := `SELECT ` + containerColumns + `
		FROM containers WHERE code = $1 OR box_number = $1
		LIMIT 2` + lockClause
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("get container: %w", err)
	}
	list, err := scanContainers(rows)
	if err != nil {
		return nil, err
	}
	switch len(list) {
	case 0:
		return nil, nil
	case 1:
		return list[0], nil
	default:
		return nil, domain.ErrAmbiguousContainerCode
	}
}

// GetByCode obtiene una caja por código de escaneo o número de caja.
func (r *ContainerRepo) GetByCode(code string) (*entity.Container, error) {
	return r.getByCode(code, "")
}

// GetByCodeForUpdate obtiene la caja y bloquea la fila (FOR UPDATE NOWAIT).
// Las transiciones concurrentes sobre la misma caja se linearizan aquí.
func (r *ContainerRepo) GetByCodeForUpdate(code string) (*entity.Container, error) {
	return r.getByCode(code, " FOR UPDATE NOWAIT")
}

// UpdateBinding escribe estado de vinculación y ubicación en una sola sentencia.
func (r *ContainerRepo) UpdateBinding(containerID int64, state string, slotID *string) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE containers SET binding_state = $2, slot_id = $3, updated_at = now()
		WHERE id = $1`, containerID, state, slotID)
	if err != nil {
		return fmt.Errorf("update binding: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrContainerNotFound
	}
	return nil
}

// UpdateLabelStatus cambia el estado de etiqueta de un grupo de cajas.
func (r *ContainerRepo) UpdateLabelStatus(ids []int64, status string) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE containers SET label_status = $2, updated_at = now()
		WHERE id = ANY($1)`, ids, status)
	if err != nil {
		return fmt.Errorf("update label status: %w", err)
	}
	return nil
}

// Create persiste una caja nueva y rellena su id interno (BIGSERIAL).
func (r *ContainerRepo) Create(c *entity.Container) error {
	query := `
		INSERT INTO containers (code, box_number, item_code, batch, expiry, quantity, binding_state, slot_id, sub_level, label_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.Code, c.BoxNumber, c.ItemCode, c.Batch, c.Expiry, c.Quantity,
		c.BindingState, c.SlotID, c.SubLevel, c.LabelStatus, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert container: %w", err)
	}
	return nil
}

// GetByIDs obtiene un grupo de cajas por id interno, en orden de creación.
func (r *ContainerRepo) GetByIDs(ids []int64) ([]*entity.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get containers: %w", err)
	}
	return scanContainers(rows)
}

// NextBoxNumber devuelve el siguiente consecutivo de número de caja para un artículo.
func (r *ContainerRepo) NextBoxNumber(itemCode string) (int, error) {
	var next int
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(MAX(box_number::int), 0) + 1
		FROM containers WHERE item_code = $1`, itemCode).Scan(&next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, nil
		}
		return 0, fmt.Errorf("next box number: %w", err)
	}
	return next, nil
}
