package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

var _ repository.OperatorRepository = (*OperatorRepo)(nil)

// OperatorRepo implementación de OperatorRepository sobre PostgreSQL.
type OperatorRepo struct {
	pool *pgxpool.Pool
}

// NewOperatorRepository construye el adaptador de operarios.
func NewOperatorRepository(pool *pgxpool.Pool) *OperatorRepo {
	return &OperatorRepo{pool: pool}
}

// FindByUsername busca un operario por su nombre de usuario.
func (r *OperatorRepo) FindByUsername(username string) (*entity.Operator, error) {
	query := `
		SELECT id, username, password_hash, name, role, active, created_at, updated_at
		FROM operators WHERE username = $1`
	var op entity.Operator
	err := r.pool.QueryRow(context.Background(), query, username).Scan(
		&op.ID, &op.Username, &op.PasswordHash, &op.Name, &op.Role,
		&op.Active, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find operator: %w", err)
	}
	return &op, nil
}

// Create persiste un operario nuevo.
func (r *OperatorRepo) Create(op *entity.Operator) error {
	query := `
		INSERT INTO operators (id, username, password_hash, name, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		op.ID, op.Username, op.PasswordHash, op.Name, op.Role,
		op.Active, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert operator: %w", err)
	}
	return nil
}
