package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// CreateClientRequest entrada para crear un cliente. Requeridos: name y document.
// User es opcional; si viene debe ser la cuenta autenticada.
type CreateClientRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Number   string `json:"number"`
	User     string `json:"user"`
}

// Validate normaliza y valida la entrada.
func (in *CreateClientRequest) Validate() error {
	in.Name = NormalizeName(in.Name)
	in.Document = strings.TrimSpace(in.Document)
	in.Email = strings.TrimSpace(in.Email)
	in.Number = strings.TrimSpace(in.Number)
	in.User = strings.TrimSpace(in.User)
	if in.Name == "" || in.Document == "" {
		return fmt.Errorf("%w: name y document son requeridos", domain.ErrInvalidInput)
	}
	if in.Email != "" {
		return validateEmail(in.Email)
	}
	return nil
}

// UpdateClientRequest actualización parcial. User solo existe para detectar el cambio de propietario.
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Document *string `json:"document"`
	Email    *string `json:"email"`
	Number   *string `json:"number"`
	User     *string `json:"user"`
}

// Validate normaliza y valida los campos presentes.
func (in *UpdateClientRequest) Validate() error {
	normalizePtr(in.Name, NormalizeName)
	normalizePtr(in.Document, strings.TrimSpace)
	normalizePtr(in.Email, strings.TrimSpace)
	normalizePtr(in.Number, strings.TrimSpace)
	if in.Name != nil && *in.Name == "" {
		return fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
	}
	if in.Document != nil && *in.Document == "" {
		return fmt.Errorf("%w: document no puede estar vacío", domain.ErrInvalidInput)
	}
	if in.Email != nil && *in.Email != "" {
		return validateEmail(*in.Email)
	}
	return nil
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	Number    string    `json:"number"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientListResponse envoltorio del listado; ID es el id de la petición.
type ClientListResponse struct {
	ID      string           `json:"id"`
	Clients []ClientResponse `json:"clients"`
}
