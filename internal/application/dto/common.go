package dto

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP. Message siempre presente.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FlexInt entero que acepta número JSON o string numérico ("5").
type FlexInt int

// UnmarshalJSON implementa json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("entero inválido %q", s)
	}
	*n = FlexInt(v)
	return nil
}

// Int devuelve el valor como int.
func (n FlexInt) Int() int { return int(n) }

// validateQuantity exige que n quepa en la columna INTEGER; con positive, además n > 0.
func validateQuantity(field string, n FlexInt, positive bool) error {
	if positive && n <= 0 {
		return fmt.Errorf("%w: %s debe ser mayor que 0", domain.ErrInvalidInput, field)
	}
	if n < 0 {
		return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, field)
	}
	if n > entity.MaxQuantity {
		return fmt.Errorf("%w: %s excede el máximo %d", domain.ErrInvalidInput, field, entity.MaxQuantity)
	}
	return nil
}

// validateMoney rechaza negativos, más de dos decimales y valores fuera de entity.MaxValue.
func validateMoney(field string, v decimal.Decimal) error {
	switch {
	case v.IsNegative():
		return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, field)
	case !v.Equal(v.Round(entity.MoneyPlaces)):
		return fmt.Errorf("%w: %s admite hasta %d decimales", domain.ErrInvalidInput, field, entity.MoneyPlaces)
	case v.GreaterThan(entity.MaxValue):
		return fmt.Errorf("%w: %s excede el máximo %s", domain.ErrInvalidInput, field, entity.MaxValue)
	}
	return nil
}

// NormalizeName recorta, colapsa espacios internos y aplica NFC, para que "Açaí" escrito con
// caracteres combinados y precompuestos choque en la verificación de unicidad.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func normalizePtr(p *string, fn func(string) string) {
	if p != nil {
		*p = fn(*p)
	}
}
