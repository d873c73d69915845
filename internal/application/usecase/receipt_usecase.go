package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/policy"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// SaleReceipt datos que necesita el generador del comprobante.
type SaleReceipt struct {
	Sale    *entity.Sale
	Seller  *entity.Account
	Client  *entity.Client
	Product *entity.Product
}

// ReceiptRenderer genera el comprobante de una venta (lo implementa infrastructure/pdf).
type ReceiptRenderer interface {
	RenderSaleReceipt(ctx context.Context, r SaleReceipt) ([]byte, error)
}

// ReceiptUseCase arma el comprobante PDF de una venta.
type ReceiptUseCase struct {
	sales    repository.SaleRepository
	clients  repository.ClientRepository
	products repository.ProductRepository
	accounts repository.AccountRepository
	renderer ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	sales repository.SaleRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	accounts repository.AccountRepository,
	renderer ReceiptRenderer,
) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, clients: clients, products: products, accounts: accounts, renderer: renderer}
}

// Receipt devuelve el PDF del comprobante. Solo el vendedor lo emite: contiene su cnpj y email.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, actor entity.Identity, id string) ([]byte, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	saleID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.Require(actor.AccountID, sale.AccountID, policy.ActionIssue); err != nil {
		return nil, err
	}

	seller, err := uc.accounts.GetByID(ctx, sale.AccountID)
	if err != nil {
		return nil, err
	}
	client, err := uc.clients.GetByID(ctx, sale.ClientID)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(ctx, sale.ProductID)
	if err != nil {
		return nil, err
	}
	if seller == nil || client == nil || product == nil {
		return nil, fmt.Errorf("comprobante de venta %s: referencia faltante", sale.ID)
	}
	return uc.renderer.RenderSaleReceipt(ctx, SaleReceipt{Sale: sale, Seller: seller, Client: client, Product: product})
}
