package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y resolución de identidad.
type AuthUseCase struct {
	accounts   repository.AccountRepository
	jwtCfg     JWTConfig
	bcryptCost int
	now        func() time.Time
	// dummyHash se compara cuando el email no existe, para no revelar por tiempo de respuesta
	// si la cuenta existe.
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth. bcryptCost <= 0 usa bcrypt.DefaultCost.
func NewAuthUseCase(accounts repository.AccountRepository, jwtCfg JWTConfig, bcryptCost int) *AuthUseCase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("backoffice-dummy-password"), bcryptCost)
	return &AuthUseCase{
		accounts:   accounts,
		jwtCfg:     jwtCfg,
		bcryptCost: bcryptCost,
		now:        time.Now,
		dummyHash:  dummy,
	}
}

// Register crea una cuenta activa: hashea el password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists / ErrTaxIDAlreadyExists si email o cnpj ya están en uso
// (por cuentas activas o desactivadas). La respuesta incluye el hash en Password.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AccountResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.accounts.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.accounts.GetByTaxID(ctx, in.CNPJ)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrTaxIDAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now().UTC()
	account := &entity.Account{
		ID:           uuid.New().String(),
		TaxID:        in.CNPJ,
		FantasyName:  in.FantasyName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Status:       entity.AccountActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	out := toAccountResponse(account)
	out.Password = account.PasswordHash
	return out, nil
}

// Login verifica email/password y emite un JWT. Email inexistente, password incorrecto y cuenta
// desactivada devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	account, err := uc.accounts.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !account.Status.IsActive() {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token}, nil
}

// Authenticate valida el token y resuelve la cuenta a la que pertenece, sin importar su estado:
// decidir sobre el estado le corresponde al llamador. Token inválido o cuenta inexistente
// devuelven ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (entity.Identity, error) {
	accountID, err := jwt.Parse(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, token)
	if err != nil {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(accountID); err != nil {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("resolver identidad: %w", err)
	}
	if account == nil {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	return entity.IdentityOf(account), nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:          a.ID,
		FantasyName: a.FantasyName,
		Email:       a.Email,
		CNPJ:        a.TaxID,
		IsActive:    a.Status.IsActive(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
