package memory

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo cuentas en memoria.
type AccountRepo struct {
	s *Store
}

// Create persiste una cuenta. Email y cnpj son únicos.
func (r *AccountRepo) Create(_ context.Context, account *entity.Account) error {
	return r.s.update(false, func() error {
		if err := r.checkUnique(account); err != nil {
			return err
		}
		r.s.accounts[account.ID] = *account
		r.s.track(account.ID)
		return nil
	})
}

func (r *AccountRepo) checkUnique(account *entity.Account) error {
	for id, a := range r.s.accounts {
		if id == account.ID {
			continue
		}
		if a.Email == account.Email {
			return domain.ErrEmailAlreadyExists
		}
		if a.TaxID == account.TaxID {
			return domain.ErrTaxIDAlreadyExists
		}
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	return r.find(func(a entity.Account) bool { return a.ID == id }), nil
}

// GetByEmail obtiene una cuenta por email (sensible a mayúsculas).
func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	return r.find(func(a entity.Account) bool { return a.Email == email }), nil
}

// GetByTaxID obtiene una cuenta por cnpj.
func (r *AccountRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Account, error) {
	return r.find(func(a entity.Account) bool { return a.TaxID == taxID }), nil
}

func (r *AccountRepo) find(match func(entity.Account) bool) *entity.Account {
	var out *entity.Account
	r.s.view(false, func() {
		for _, a := range r.s.accounts {
			if match(a) {
				a := a
				out = &a
				return
			}
		}
	})
	return out
}

// Update actualiza los datos de la cuenta (no el estado).
func (r *AccountRepo) Update(_ context.Context, account *entity.Account) error {
	return r.s.update(false, func() error {
		current, ok := r.s.accounts[account.ID]
		if !ok {
			return domain.ErrAccountNotFound
		}
		if err := r.checkUnique(account); err != nil {
			return err
		}
		updated := *account
		updated.Status = current.Status
		updated.CreatedAt = current.CreatedAt
		r.s.accounts[account.ID] = updated
		return nil
	})
}

// SetStatus cambia el estado de la cuenta.
func (r *AccountRepo) SetStatus(_ context.Context, id string, status entity.AccountStatus, at time.Time) error {
	return r.s.update(false, func() error {
		a, ok := r.s.accounts[id]
		if !ok {
			return domain.ErrAccountNotFound
		}
		a.Status = status
		a.UpdatedAt = at
		r.s.accounts[id] = a
		return nil
	})
}
