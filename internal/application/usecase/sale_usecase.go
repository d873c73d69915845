package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/policy"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// SaleUseCase casos de uso de ventas. Crear, cambiar la cantidad o eliminar una venta mueve el
// stock del producto en la misma transacción.
type SaleUseCase struct {
	tx       repository.SaleTxRunner
	sales    repository.SaleRepository
	clients  repository.ClientRepository
	accounts repository.AccountRepository
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(tx repository.SaleTxRunner, sales repository.SaleRepository, clients repository.ClientRepository, accounts repository.AccountRepository) *SaleUseCase {
	return &SaleUseCase{tx: tx, sales: sales, clients: clients, accounts: accounts, now: time.Now}
}

// Create registra una venta. Cliente y producto deben existir (ErrNotFound) y ser del actor
// (ErrForbidden); ErrInsufficientStock si el stock no alcanza.
func (uc *SaleUseCase) Create(ctx context.Context, actor entity.Identity, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ownerID, err := resolveOwner(ctx, uc.accounts, actor, in.User)
	if err != nil {
		return nil, err
	}
	clientID, ok := parseID(in.Client)
	if !ok {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.Require(ownerID, client.AccountID, policy.ActionCreate); err != nil {
		return nil, err
	}
	productID, ok := parseID(in.Product)
	if !ok {
		return nil, domain.ErrNotFound
	}

	amount := in.Amount.Int()
	var sale *entity.Sale
	err = uc.tx.RunSale(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		product, err := products.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := policy.Require(ownerID, product.AccountID, policy.ActionCreate); err != nil {
			return err
		}
		if product.Stock < amount {
			return domain.ErrInsufficientStock
		}
		total, err := saleTotal(product.Value, amount)
		if err != nil {
			return err
		}
		now := uc.now().UTC()
		product.Stock -= amount
		product.UpdatedAt = now
		if err := products.Update(ctx, product); err != nil {
			return err
		}
		sale = &entity.Sale{
			ID:        uuid.New().String(),
			AccountID: ownerID,
			ClientID:  client.ID,
			ProductID: product.ID,
			Amount:    amount,
			UnitValue: product.Value,
			Total:     total,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// List lista todas las ventas (público, sin paginación).
func (uc *SaleUseCase) List(ctx context.Context) (*dto.SaleListResponse, error) {
	list, err := uc.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Sales: items}, nil
}

// GetByID obtiene una venta.
func (uc *SaleUseCase) GetByID(ctx context.Context, actor entity.Identity, id string) (*dto.SaleResponse, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	sale, err := uc.load(ctx, uc.sales, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(actor.AccountID, sale.AccountID, policy.ActionRead); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Update cambia la cantidad de una venta del actor y ajusta el stock por la diferencia.
// El precio unitario queda el de la venta original.
func (uc *SaleUseCase) Update(ctx context.Context, actor entity.Identity, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	sale, err := uc.load(ctx, uc.sales, id)
	if err != nil {
		return nil, err
	}
	if changesOwner(in.User, sale.AccountID) {
		return nil, domain.ErrOwnershipTamper
	}
	if err := policy.Require(actor.AccountID, sale.AccountID, policy.ActionUpdate); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Amount == nil {
		return toSaleResponse(sale), nil
	}

	newAmount := in.Amount.Int()
	err = uc.tx.RunSale(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		product, err := products.GetByIDForUpdate(ctx, sale.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Releer con el producto bloqueado: otra petición pudo cambiar la cantidad.
		current, err := uc.load(ctx, sales, sale.ID)
		if err != nil {
			return err
		}
		delta := newAmount - current.Amount
		if delta > product.Stock {
			return domain.ErrInsufficientStock
		}
		total, err := saleTotal(current.UnitValue, newAmount)
		if err != nil {
			return err
		}
		now := uc.now().UTC()
		if delta != 0 {
			product.Stock -= delta
			product.UpdatedAt = now
			if err := products.Update(ctx, product); err != nil {
				return err
			}
		}
		current.Amount = newAmount
		current.Total = total
		current.UpdatedAt = now
		if err := sales.Update(ctx, current); err != nil {
			return err
		}
		sale = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Delete elimina una venta del actor y devuelve las unidades al stock.
func (uc *SaleUseCase) Delete(ctx context.Context, actor entity.Identity, id string) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	sale, err := uc.load(ctx, uc.sales, id)
	if err != nil {
		return err
	}
	if err := policy.Require(actor.AccountID, sale.AccountID, policy.ActionDelete); err != nil {
		return err
	}
	return uc.tx.RunSale(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		product, err := products.GetByIDForUpdate(ctx, sale.ProductID)
		if err != nil {
			return err
		}
		current, err := uc.load(ctx, sales, sale.ID)
		if err != nil {
			return err
		}
		if product != nil {
			product.Stock += current.Amount
			product.UpdatedAt = uc.now().UTC()
			if err := products.Update(ctx, product); err != nil {
				return err
			}
		}
		return sales.Delete(ctx, current.ID)
	})
}

func (uc *SaleUseCase) load(ctx context.Context, repo repository.SaleRepository, id string) (*entity.Sale, error) {
	saleID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	sale, err := repo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// saleTotal calcula unit * amount; ErrInvalidInput si no cabe en la columna total.
func saleTotal(unit decimal.Decimal, amount int) (decimal.Decimal, error) {
	total := unit.Mul(decimal.NewFromInt(int64(amount)))
	if total.GreaterThan(entity.MaxTotal) {
		return decimal.Decimal{}, fmt.Errorf("%w: total excede el máximo %s", domain.ErrInvalidInput, entity.MaxTotal)
	}
	return total, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:        s.ID,
		Client:    s.ClientID,
		Product:   s.ProductID,
		User:      s.AccountID,
		Amount:    s.Amount,
		UnitValue: s.UnitValue,
		Total:     s.Total,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
