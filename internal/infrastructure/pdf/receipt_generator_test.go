package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R$ 0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "R$ 10,50", formatMoney(decimal.RequireFromString("10.5")))
	assert.Equal(t, "R$ 1.234.567,89", formatMoney(decimal.RequireFromString("1234567.89")))
	assert.Equal(t, "R$ -1.000,00", formatMoney(decimal.NewFromInt(-1000)))
}

func TestFormatCNPJ(t *testing.T) {
	assert.Equal(t, "13.043.000/0001-00", formatCNPJ("13043000000100"))
	assert.Equal(t, "123", formatCNPJ("123"))
}

func TestRenderSaleReceipt(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := usecase.SaleReceipt{
		Sale: &entity.Sale{
			ID: "3f1c2a7e-0000-4000-8000-000000000001", Amount: 2,
			UnitValue: decimal.RequireFromString("10.50"), Total: decimal.RequireFromString("21"), CreatedAt: now,
		},
		Seller:  &entity.Account{FantasyName: "Joana Doces", TaxID: "13043000000100", Email: "joana@mail.com"},
		Client:  &entity.Client{Name: "Jonas", Document: "11122233345"},
		Product: &entity.Product{Name: "Bolo"},
	}
	out, err := NewMarotoReceiptGenerator().RenderSaleReceipt(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
