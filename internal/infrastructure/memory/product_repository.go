package memory

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. locked indica que el llamador ya tiene el lock del store.
type ProductRepo struct {
	s      *Store
	locked bool
}

// Create persiste un producto. El nombre es único y la cuenta debe existir.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.s.update(r.locked, func() error {
		if _, ok := r.s.accounts[product.AccountID]; !ok {
			return domain.ErrAccountNotFound
		}
		if r.nameTaken(product.ID, product.Name) {
			return domain.ErrDuplicate
		}
		r.s.products[product.ID] = *product
		r.s.track(product.ID)
		return nil
	})
}

func (r *ProductRepo) nameTaken(id, name string) bool {
	for _, p := range r.s.products {
		if p.ID != id && p.Name == name {
			return true
		}
	}
	return false
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.s.view(r.locked, func() {
		if p, ok := r.s.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetByIDForUpdate igual que GetByID; dentro de RunSale el lock ya serializa.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetByName obtiene un producto por nombre exacto.
func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	var out *entity.Product
	r.s.view(r.locked, func() {
		for _, p := range r.s.products {
			if p.Name == name {
				p := p
				out = &p
				return
			}
		}
	})
	return out, nil
}

// List lista todos los productos en orden de creación.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	r.s.view(r.locked, func() {
		for _, p := range r.s.products {
			p := p
			list = append(list, &p)
		}
		sortByInsertion(r.s, list, func(p *entity.Product) string { return p.ID })
	})
	return list, nil
}

// Update actualiza un producto (incluido el stock).
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.s.update(r.locked, func() error {
		current, ok := r.s.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if r.nameTaken(product.ID, product.Name) {
			return domain.ErrDuplicate
		}
		updated := *product
		updated.AccountID = current.AccountID
		updated.CreatedAt = current.CreatedAt
		r.s.products[product.ID] = updated
		return nil
	})
}

// Delete elimina un producto. Falla con ErrInUse si tiene ventas.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.s.update(r.locked, func() error {
		if _, ok := r.s.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, sale := range r.s.sales {
			if sale.ProductID == id {
				return domain.ErrInUse
			}
		}
		delete(r.s.products, id)
		delete(r.s.order, id)
		return nil
	})
}
