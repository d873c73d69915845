package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta de Amount unidades de un producto a un cliente, ambos de la misma cuenta.
// UnitValue congela el Value del producto al momento de la venta; Total = UnitValue * Amount.
type Sale struct {
	ID        string
	AccountID string
	ClientID  string
	ProductID string
	Amount    int
	UnitValue decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
