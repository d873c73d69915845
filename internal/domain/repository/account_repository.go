package repository

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Los Get* devuelven (nil, nil) cuando no hay fila; la búsqueda incluye cuentas desactivadas.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	// SetStatus cambia solo el estado (baja lógica). Devuelve domain.ErrAccountNotFound si no existe.
	SetStatus(ctx context.Context, id string, status entity.AccountStatus, at time.Time) error
}
