package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/policy"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// requireActive exige una identidad autenticada con cuenta activa.
func requireActive(actor entity.Identity) error {
	if actor.AccountID == "" || !actor.Status.IsActive() {
		return domain.ErrUnauthorized
	}
	return nil
}

// parseID valida que id sea un UUID y devuelve su forma canónica.
func parseID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// resolveOwner determina la cuenta propietaria de un recurso nuevo. Sin requested, es el actor.
// Con requested, la cuenta debe existir y estar activa (ErrAccountNotFound) y ser el propio
// actor (ErrForbidden).
func resolveOwner(ctx context.Context, accounts repository.AccountRepository, actor entity.Identity, requested string) (string, error) {
	if requested == "" {
		return actor.AccountID, nil
	}
	id, ok := parseID(requested)
	if !ok {
		return "", domain.ErrAccountNotFound
	}
	owner, err := accounts.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if owner == nil || !owner.Status.IsActive() {
		return "", domain.ErrAccountNotFound
	}
	if err := policy.Require(actor.AccountID, owner.ID, policy.ActionCreate); err != nil {
		return "", err
	}
	return owner.ID, nil
}

// changesOwner indica si el patch trae un user distinto del propietario actual. Compara la forma
// canónica del UUID, así que el mismo id en mayúsculas no cuenta como cambio.
func changesOwner(requested *string, ownerID string) bool {
	if requested == nil {
		return false
	}
	id, ok := parseID(*requested)
	return !ok || id != ownerID
}
