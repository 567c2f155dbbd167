package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhortiz/bodega-scan-api/internal/application/dto"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
	"github.com/jhortiz/bodega-scan-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación de operarios: login y alta. El motor de vinculación
// exige un operario identificado en cada mutación; este caso de uso es la
// fuente de esa identidad.
type UseCase struct {
	operators repository.OperatorRepository
	jwtCfg    JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(operators repository.OperatorRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{operators: operators, jwtCfg: jwtCfg}
}

// Login verifica usuario/contraseña, genera JWT y retorna token + operario.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	op, err := uc.operators.FindByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrOperatorNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !op.Active {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, op.ID, op.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Operator: *toOperatorResponse(op)}, nil
}

// Register crea un operario con contraseña hasheada (bcrypt).
// Devuelve ErrDuplicate si el username ya existe.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.OperatorResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.operators.FindByUsername(in.Username)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOperario
	}
	name := in.Name
	if name == "" {
		name = in.Username
	}
	now := time.Now()
	op := &entity.Operator{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.operators.Create(op); err != nil {
		return nil, err
	}
	return toOperatorResponse(op), nil
}

func toOperatorResponse(op *entity.Operator) *dto.OperatorResponse {
	if op == nil {
		return nil
	}
	return &dto.OperatorResponse{
		ID:        op.ID,
		Username:  op.Username,
		Name:      op.Name,
		Role:      op.Role,
		Active:    op.Active,
		CreatedAt: op.CreatedAt,
	}
}
