package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

var cfg = auth.JWTConfig{Secret: "secret", ExpMinutes: 60, Issuer: "backoffice-api"}

func joana() dto.RegisterRequest {
	return dto.RegisterRequest{FantasyName: "Joana Doces", Email: "joana@mail.com", Password: "123456", CNPJ: "13.043.000/0001-00"}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := auth.NewAuthUseCase(s.Accounts(), cfg, bcrypt.MinCost)

	out, err := uc.Register(ctx, joana())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.True(t, out.IsActive)
	assert.Equal(t, "13043000000100", out.CNPJ)
	assert.NotEqual(t, "123456", out.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out.Password), []byte("123456")))

	_, err = uc.Register(ctx, joana())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	other := joana()
	other.Email = "otra@mail.com"
	_, err = uc.Register(ctx, other)
	assert.ErrorIs(t, err, domain.ErrTaxIDAlreadyExists)

	bad := joana()
	bad.Password = "123"
	_, err = uc.Register(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := auth.NewAuthUseCase(s.Accounts(), cfg, bcrypt.MinCost)
	acc, err := uc.Register(ctx, joana())
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "joana@mail.com", Password: "123456"})
	require.NoError(t, err)

	id, err := uc.Authenticate(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, id.AccountID)
	assert.True(t, id.Status.IsActive())

	for _, in := range []dto.LoginRequest{
		{Email: "joana@mail.com", Password: "incorrecta"},
		{Email: "nadie@mail.com", Password: "123456"},
		{Email: "JOANA@mail.com", Password: "123456"},
	} {
		_, err := uc.Login(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, in.Email)
	}

	_, err = uc.Authenticate(ctx, "basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Token firmado para una cuenta que no existe.
	ghost, err := jwt.Generate(cfg.Secret, "3f1c2a7e-0000-4000-8000-000000000000", cfg.Issuer, 5)
	require.NoError(t, err)
	_, err = uc.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	uc := auth.NewAuthUseCase(s.Accounts(), cfg, bcrypt.MinCost)
	acc, err := uc.Register(ctx, joana())
	require.NoError(t, err)
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "joana@mail.com", Password: "123456"})
	require.NoError(t, err)

	require.NoError(t, s.Accounts().SetStatus(ctx, acc.ID, entity.AccountDeactivated, acc.UpdatedAt))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "joana@mail.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// El token previo sigue resolviendo la identidad, ahora desactivada.
	id, err := uc.Authenticate(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.AccountDeactivated, id.Status)
}
