package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, cnpj, fantasy_name, email, password_hash, status, created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TaxID, a.FantasyName, a.Email, a.PasswordHash, string(a.Status), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return accountWriteError("insert account", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID, activa o no.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, "id", id)
}

// GetByEmail obtiene una cuenta por email exacto.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, "email", email)
}

// GetByTaxID obtiene una cuenta por CNPJ.
func (r *AccountRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Account, error) {
	return r.findOne(ctx, "cnpj", taxID)
}

func (r *AccountRepo) findOne(ctx context.Context, column, value string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + column + ` = $1`
	var a entity.Account
	var status string
	err := r.q.QueryRow(ctx, query, value).Scan(
		&a.ID, &a.TaxID, &a.FantasyName, &a.Email, &a.PasswordHash, &status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by %s: %w", column, err)
	}
	a.Status = entity.AccountStatus(status)
	return &a, nil
}

// Update actualiza los datos editables. El estado se cambia solo con SetStatus.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET cnpj = $2, fantasy_name = $3, email = $4, password_hash = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, a.ID, a.TaxID, a.FantasyName, a.Email, a.PasswordHash, a.UpdatedAt)
	if err != nil {
		return accountWriteError("update account", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SetStatus cambia el estado de la cuenta.
func (r *AccountRepo) SetStatus(ctx context.Context, id string, status entity.AccountStatus, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE accounts SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("set account status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func accountWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		switch constraintName(err) {
		case constraintAccountCNPJ:
			return domain.ErrTaxIDAlreadyExists
		default:
			return domain.ErrEmailAlreadyExists
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
