package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// CreateProductRequest entrada para crear un producto. Requeridos: name y value.
// Stock por defecto 0. Value y stock aceptan número o string ("10", "5").
type CreateProductRequest struct {
	Name  string           `json:"name"`
	Value *decimal.Decimal `json:"value"`
	Stock FlexInt          `json:"stock"`
	User  string           `json:"user"`
}

// Validate normaliza y valida la entrada.
func (in *CreateProductRequest) Validate() error {
	in.Name = NormalizeName(in.Name)
	in.User = strings.TrimSpace(in.User)
	if in.Name == "" || in.Value == nil {
		return fmt.Errorf("%w: name y value son requeridos", domain.ErrInvalidInput)
	}
	if err := validateMoney("value", *in.Value); err != nil {
		return err
	}
	return validateQuantity("stock", in.Stock, false)
}

// UpdateProductRequest actualización parcial. User solo existe para detectar el cambio de propietario.
type UpdateProductRequest struct {
	Name  *string          `json:"name"`
	Value *decimal.Decimal `json:"value"`
	Stock *FlexInt         `json:"stock"`
	User  *string          `json:"user"`
}

// Validate normaliza y valida los campos presentes.
func (in *UpdateProductRequest) Validate() error {
	normalizePtr(in.Name, NormalizeName)
	if in.Name != nil && *in.Name == "" {
		return fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
	}
	if in.Value != nil {
		if err := validateMoney("value", *in.Value); err != nil {
			return err
		}
	}
	if in.Stock != nil {
		return validateQuantity("stock", *in.Stock, false)
	}
	return nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
	Stock     int             `json:"stock"`
	User      string          `json:"user"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductListResponse envoltorio del listado; ID es el id de la petición.
type ProductListResponse struct {
	ID       string            `json:"id"`
	Products []ProductResponse `json:"products"`
}
