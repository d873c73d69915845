package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// CreateSaleRequest entrada para registrar una venta. Requeridos: client, product (ids) y amount > 0.
type CreateSaleRequest struct {
	Client  string  `json:"client"`
	Product string  `json:"product"`
	Amount  FlexInt `json:"amount"`
	User    string  `json:"user"`
}

// Validate normaliza y valida la entrada.
func (in *CreateSaleRequest) Validate() error {
	in.Client = strings.TrimSpace(in.Client)
	in.Product = strings.TrimSpace(in.Product)
	in.User = strings.TrimSpace(in.User)
	if in.Client == "" || in.Product == "" {
		return fmt.Errorf("%w: client y product son requeridos", domain.ErrInvalidInput)
	}
	return validateQuantity("amount", in.Amount, true)
}

// UpdateSaleRequest actualización parcial: solo amount es modificable.
type UpdateSaleRequest struct {
	Amount  *FlexInt `json:"amount"`
	Client  *string  `json:"client"`
	Product *string  `json:"product"`
	User    *string  `json:"user"`
}

// Validate valida los campos presentes.
func (in *UpdateSaleRequest) Validate() error {
	if in.Client != nil || in.Product != nil {
		return fmt.Errorf("%w: client y product de una venta no se pueden cambiar", domain.ErrInvalidInput)
	}
	if in.Amount != nil {
		return validateQuantity("amount", *in.Amount, true)
	}
	return nil
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string          `json:"id"`
	Client    string          `json:"client"`
	Product   string          `json:"product"`
	User      string          `json:"user"`
	Amount    int             `json:"amount"`
	UnitValue decimal.Decimal `json:"unit_value"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SaleListResponse envoltorio del listado; ID es el id de la petición.
type SaleListResponse struct {
	ID    string         `json:"id"`
	Sales []SaleResponse `json:"sales"`
}
