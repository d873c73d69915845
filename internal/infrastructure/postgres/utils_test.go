package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraintAccountCNPJ})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}

func TestAccountWriteError(t *testing.T) {
	email := &pgconn.PgError{Code: "23505", ConstraintName: constraintAccountEmail}
	cnpj := &pgconn.PgError{Code: "23505", ConstraintName: constraintAccountCNPJ}

	assert.ErrorIs(t, accountWriteError("insert", email), domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, accountWriteError("insert", cnpj), domain.ErrTaxIDAlreadyExists)

	other := accountWriteError("insert", errors.New("conexión cerrada"))
	assert.ErrorContains(t, other, "insert: conexión cerrada")
}
