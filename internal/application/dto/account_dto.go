package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// MinPasswordLength longitud mínima de la contraseña.
const MinPasswordLength = 6

// RegisterRequest entrada para registrar una cuenta. Todos los campos son requeridos.
type RegisterRequest struct {
	FantasyName string `json:"fantasy_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CNPJ        string `json:"cnpj"`
}

// Validate normaliza y valida la entrada.
func (in *RegisterRequest) Validate() error {
	in.FantasyName = NormalizeName(in.FantasyName)
	in.Email = strings.TrimSpace(in.Email)
	in.CNPJ = NormalizeCNPJ(in.CNPJ)
	if in.FantasyName == "" || in.Email == "" || in.Password == "" || in.CNPJ == "" {
		return fmt.Errorf("%w: fantasy_name, email, password y cnpj son requeridos", domain.ErrInvalidInput)
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if err := validatePassword(in.Password); err != nil {
		return err
	}
	return validateCNPJ(in.CNPJ)
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate valida la entrada de login.
func (in *LoginRequest) Validate() error {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	return nil
}

// LoginResponse salida con el token JWT.
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateAccountRequest actualización parcial de la cuenta propia.
// ID e IsActive existen solo para detectar el intento de modificarlos.
type UpdateAccountRequest struct {
	ID          *string `json:"id"`
	IsActive    *bool   `json:"isActive"`
	FantasyName *string `json:"fantasy_name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	CNPJ        *string `json:"cnpj"`
}

// TouchesProtectedFields indica si el patch intenta cambiar id o isActive.
func (in *UpdateAccountRequest) TouchesProtectedFields() bool {
	return in.ID != nil || in.IsActive != nil
}

// Validate normaliza y valida los campos presentes.
func (in *UpdateAccountRequest) Validate() error {
	normalizePtr(in.FantasyName, NormalizeName)
	normalizePtr(in.Email, strings.TrimSpace)
	normalizePtr(in.CNPJ, NormalizeCNPJ)
	if in.FantasyName != nil && *in.FantasyName == "" {
		return fmt.Errorf("%w: fantasy_name no puede estar vacío", domain.ErrInvalidInput)
	}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return err
		}
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return err
		}
	}
	if in.CNPJ != nil {
		return validateCNPJ(*in.CNPJ)
	}
	return nil
}

// AccountResponse salida de una cuenta. Password solo se llena en la respuesta de registro
// (contiene el hash, nunca el texto plano).
type AccountResponse struct {
	ID          string    `json:"id"`
	FantasyName string    `json:"fantasy_name"`
	Email       string    `json:"email"`
	CNPJ        string    `json:"cnpj"`
	Password    string    `json:"password,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NormalizeCNPJ elimina la puntuación habitual (12.345.678/0001-90).
func NormalizeCNPJ(s string) string {
	return strings.NewReplacer(".", "", "/", "", "-", "", " ", "").Replace(s)
}

func validateCNPJ(s string) error {
	if len(s) != 14 {
		return fmt.Errorf("%w: cnpj debe tener 14 dígitos", domain.ErrInvalidInput)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: cnpj debe tener solo dígitos", domain.ErrInvalidInput)
		}
	}
	return nil
}

func validateEmail(s string) error {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 || strings.ContainsAny(s, " \t") {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < MinPasswordLength {
		return fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}
