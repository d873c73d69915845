package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Límites de las columnas: cantidades INTEGER, valores NUMERIC(12,2) y totales NUMERIC(14,2).
const (
	MaxQuantity = math.MaxInt32
	MoneyPlaces = 2
)

var (
	MaxValue = decimal.RequireFromString("9999999999.99")
	MaxTotal = decimal.RequireFromString("999999999999.99")
)

// Product representa un producto a la venta de una cuenta.
// Stock se descuenta al registrar ventas.
type Product struct {
	ID        string
	AccountID string
	Name      string // único en el sistema
	Value     decimal.Decimal
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
