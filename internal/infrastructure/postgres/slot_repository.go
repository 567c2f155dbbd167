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

var _ repository.SlotRepository = (*SlotRepo)(nil)

// SlotRepo implementación de SlotRepository sobre PostgreSQL (usable con pool o tx).
type SlotRepo struct {
	q Querier
}

// NewSlotRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewSlotRepository(q Querier) *SlotRepo {
	return &SlotRepo{q: q}
}

const slotColumns = `id, code, name, building, area, floor, capacity, occupancy, active, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.Slot, error) {
	var s entity.Slot
	err := row.Scan(
		&s.ID, &s.Code, &s.Name, &s.Building, &s.Area, &s.Floor,
		&s.Capacity, &s.Occupancy, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan slot: %w", err)
	}
	return &s, nil
}

// GetByCode obtiene una ubicación por su código.
func (r *SlotRepo) GetByCode(code string) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE code = $1`
	return scanSlot(r.q.QueryRow(context.Background(), query, code))
}

// GetByCodeForUpdate obtiene la ubicación y bloquea la fila (FOR UPDATE NOWAIT).
// Si otra transacción tiene el bloqueo, PostgreSQL responde 55P03 y el
// TxRunner lo traduce a ErrConcurrencyConflict.
func (r *SlotRepo) GetByCodeForUpdate(code string) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE code = $1 FOR UPDATE NOWAIT`
	return scanSlot(r.q.QueryRow(context.Background(), query, code))
}

// GetByIDForUpdate obtiene la ubicación por id y bloquea la fila.
func (r *SlotRepo) GetByIDForUpdate(id string) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1 FOR UPDATE NOWAIT`
	return scanSlot(r.q.QueryRow(context.Background(), query, id))
}

// AdjustOccupancy suma delta a la ocupación con piso en 0 y tope en capacity.
// El UPDATE condicional no toca la fila cuando el incremento superaría la
// capacidad; en ese caso se devuelve ErrCapacityExceeded.
func (r *SlotRepo) AdjustOccupancy(slotID string, delta int) (int, error) {
	query := `
		UPDATE slots
		SET occupancy = GREATEST(occupancy + $2, 0), updated_at = now()
		WHERE id = $1
		  AND ($2 <= 0 OR capacity IS NULL OR occupancy + $2 <= capacity)
		RETURNING occupancy`
	var occ int
	err := r.q.QueryRow(context.Background(), query, slotID, delta).Scan(&occ)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Fila no afectada: o no existe o el incremento excede la capacidad.
			exists := false
			if err2 := r.q.QueryRow(context.Background(),
				`SELECT true FROM slots WHERE id = $1`, slotID).Scan(&exists); err2 != nil {
				if errors.Is(err2, pgx.ErrNoRows) {
					return 0, domain.ErrSlotNotFound
				}
				return 0, fmt.Errorf("check slot: %w", err2)
			}
			return 0, domain.ErrCapacityExceeded
		}
		return 0, fmt.Errorf("adjust occupancy: %w", err)
	}
	return occ, nil
}

// Create persiste una ubicación nueva.
func (r *SlotRepo) Create(slot *entity.Slot) error {
	query := `
		INSERT INTO slots (id, code, name, building, area, floor, capacity, occupancy, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		slot.ID, slot.Code, slot.Name, slot.Building, slot.Area, slot.Floor,
		slot.Capacity, slot.Occupancy, slot.Active, slot.CreatedAt, slot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

// List lista ubicaciones ordenadas por código.
func (r *SlotRepo) List(limit, offset int) ([]*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Slot
	for rows.Next() {
		var s entity.Slot
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Building, &s.Area, &s.Floor,
			&s.Capacity, &s.Occupancy, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina una ubicación solo si su ocupación es cero.
func (r *SlotRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM slots WHERE id = $1 AND occupancy = 0`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSlotNotEmpty
	}
	return nil
}
