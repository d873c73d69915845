package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/policy"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock también lo mueven las ventas, por eso
// Update escribe sobre la fila bloqueada dentro de la misma transacción que usan ellas.
type ProductUseCase struct {
	tx       repository.SaleTxRunner
	repo     repository.ProductRepository
	accounts repository.AccountRepository
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx repository.SaleTxRunner, repo repository.ProductRepository, accounts repository.AccountRepository) *ProductUseCase {
	return &ProductUseCase{tx: tx, repo: repo, accounts: accounts, now: time.Now}
}

// Create crea un producto propiedad del actor.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Identity, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
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
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		AccountID: ownerID,
		Name:      in.Name,
		Value:     *in.Value,
		Stock:     in.Stock.Int(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista todos los productos (público, sin paginación).
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Products: items}, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor entity.Identity, id string) (*dto.ProductResponse, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(actor.AccountID, product.AccountID, policy.ActionRead); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica un patch a un producto del actor.
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Identity, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if changesOwner(in.User, product.AccountID) {
		return nil, domain.ErrOwnershipTamper
	}
	if err := policy.Require(actor.AccountID, product.AccountID, policy.ActionUpdate); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != product.Name {
		existing, err := uc.repo.GetByName(ctx, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	// Releer con lock: una venta pudo mover el stock desde la primera lectura.
	err = uc.tx.RunSale(ctx, func(products repository.ProductRepository, _ repository.SaleRepository) error {
		current, err := products.GetByIDForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			current.Name = *in.Name
		}
		if in.Value != nil {
			current.Value = *in.Value
		}
		if in.Stock != nil {
			current.Stock = in.Stock.Int()
		}
		current.UpdatedAt = uc.now().UTC()
		if err := products.Update(ctx, current); err != nil {
			return err
		}
		product = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del actor. ErrInUse si tiene ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Identity, id string) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	product, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Require(actor.AccountID, product.AccountID, policy.ActionDelete); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, product.ID)
}

func (uc *ProductUseCase) load(ctx context.Context, id string) (*entity.Product, error) {
	productID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Value:     p.Value,
		Stock:     p.Stock,
		User:      p.AccountID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
