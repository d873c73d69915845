package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/policy"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// AccountUseCase autoservicio de la cuenta: consulta, actualización y baja lógica.
type AccountUseCase struct {
	repo       repository.AccountRepository
	bcryptCost int
	now        func() time.Time
}

// NewAccountUseCase construye el caso de uso con el puerto de persistencia.
func NewAccountUseCase(repo repository.AccountRepository, bcryptCost int) *AccountUseCase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountUseCase{repo: repo, bcryptCost: bcryptCost, now: time.Now}
}

// List devuelve las cuentas visibles para el actor: solo la propia.
func (uc *AccountUseCase) List(ctx context.Context, actor entity.Identity) ([]dto.AccountResponse, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	account, err := uc.repo.GetByID(ctx, actor.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	return []dto.AccountResponse{*entityToAccountResponse(account)}, nil
}

// Update aplica un patch a la cuenta propia. Devuelve ErrAccountNotFound si id no resuelve,
// ErrUnauthorized si la cuenta es de otro, ErrProtectedField si se intenta cambiar id o isActive.
// Si viene password se vuelve a hashear; la respuesta nunca incluye el hash.
func (uc *AccountUseCase) Update(ctx context.Context, actor entity.Identity, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	accountID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	if policy.Authorize(actor.AccountID, account.ID, policy.ActionUpdate) == policy.Deny {
		return nil, domain.ErrUnauthorized
	}
	if in.TouchesProtectedFields() {
		return nil, domain.ErrProtectedField
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != account.Email {
		other, err := uc.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		account.Email = *in.Email
	}
	if in.CNPJ != nil && *in.CNPJ != account.TaxID {
		other, err := uc.repo.GetByTaxID(ctx, *in.CNPJ)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrTaxIDAlreadyExists
		}
		account.TaxID = *in.CNPJ
	}
	if in.FantasyName != nil {
		account.FantasyName = *in.FantasyName
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = string(hash)
	}
	account.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return entityToAccountResponse(account), nil
}

// SoftDelete desactiva la cuenta propia conservando sus datos. Devuelve ErrInvalidID si id no es
// un UUID, ErrForbidden si la cuenta es de otro y ErrAlreadyDeactivated si ya estaba desactivada.
// El actor puede llegar desactivado: es la única operación que lo admite.
func (uc *AccountUseCase) SoftDelete(ctx context.Context, actor entity.Identity, id string) error {
	if actor.AccountID == "" {
		return domain.ErrUnauthorized
	}
	accountID, ok := parseID(id)
	if !ok {
		return domain.ErrInvalidID
	}
	if err := policy.Require(actor.AccountID, accountID, policy.ActionDelete); err != nil {
		return err
	}
	account, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrAccountNotFound
	}
	if !account.Status.IsActive() {
		return domain.ErrAlreadyDeactivated
	}
	return uc.repo.SetStatus(ctx, account.ID, entity.AccountDeactivated, uc.now().UTC())
}

func entityToAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
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
