package entity

import "time"

// AccountStatus estado del ciclo de vida de una cuenta. Lo consultan por igual el gate de
// autenticación y los casos de uso.
type AccountStatus string

const (
	AccountActive      AccountStatus = "active"
	AccountDeactivated AccountStatus = "deactivated"
)

// IsActive indica si la cuenta puede autenticarse y operar.
func (s AccountStatus) IsActive() bool { return s == AccountActive }

// Valid indica si el valor es uno de los estados conocidos.
func (s AccountStatus) Valid() bool {
	return s == AccountActive || s == AccountDeactivated
}

// Account representa una empresa registrada (dueña de clientes, productos y ventas).
// Nunca se elimina físicamente: la baja es un cambio de Status.
type Account struct {
	ID           string
	TaxID        string // CNPJ
	FantasyName  string
	Email        string // único, comparación sensible a mayúsculas
	PasswordHash string // bcrypt
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity identidad autenticada que viaja explícitamente hacia los casos de uso.
type Identity struct {
	AccountID string
	Email     string
	Status    AccountStatus
}

// IdentityOf construye la identidad a partir de la cuenta resuelta.
func IdentityOf(a *Account) Identity {
	return Identity{AccountID: a.ID, Email: a.Email, Status: a.Status}
}
