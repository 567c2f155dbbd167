package repository

import "github.com/jhortiz/bodega-scan-api/internal/domain/entity"

// OperatorRepository define el puerto de persistencia para operarios.
type OperatorRepository interface {
	FindByUsername(username string) (*entity.Operator, error)
	Create(operator *entity.Operator) error
}
