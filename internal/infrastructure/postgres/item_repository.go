package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo lectura del catálogo de artículos. La tabla items la administra el
// sistema de catálogo externo; aquí nunca se escribe.
type ItemRepo struct {
	pool *pgxpool.Pool
}

// NewItemRepository construye el adaptador de catálogo.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

// GetByCode obtiene un artículo por código.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	query := `SELECT code, name, unit FROM items WHERE code = $1`
	var it entity.Item
	err := r.pool.QueryRow(context.Background(), query, code).Scan(&it.Code, &it.Name, &it.Unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}
