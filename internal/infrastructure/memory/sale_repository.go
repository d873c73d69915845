package memory

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	s      *Store
	locked bool
}

// Create persiste una venta. Cuenta, cliente y producto deben existir.
func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.s.update(r.locked, func() error {
		if _, ok := r.s.accounts[sale.AccountID]; !ok {
			return domain.ErrAccountNotFound
		}
		if _, ok := r.s.clients[sale.ClientID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := r.s.products[sale.ProductID]; !ok {
			return domain.ErrNotFound
		}
		r.s.sales[sale.ID] = *sale
		r.s.track(sale.ID)
		return nil
	})
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.s.view(r.locked, func() {
		if sale, ok := r.s.sales[id]; ok {
			out = &sale
		}
	})
	return out, nil
}

// List lista todas las ventas en orden de creación.
func (r *SaleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	var list []*entity.Sale
	r.s.view(r.locked, func() {
		for _, sale := range r.s.sales {
			sale := sale
			list = append(list, &sale)
		}
		sortByInsertion(r.s, list, func(s *entity.Sale) string { return s.ID })
	})
	return list, nil
}

// Update actualiza cantidad y total de una venta.
func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	return r.s.update(r.locked, func() error {
		current, ok := r.s.sales[sale.ID]
		if !ok {
			return domain.ErrNotFound
		}
		current.Amount = sale.Amount
		current.Total = sale.Total
		current.UpdatedAt = sale.UpdatedAt
		r.s.sales[sale.ID] = current
		return nil
	})
}

// Delete elimina una venta.
func (r *SaleRepo) Delete(_ context.Context, id string) error {
	return r.s.update(r.locked, func() error {
		if _, ok := r.s.sales[id]; !ok {
			return domain.ErrNotFound
		}
		delete(r.s.sales, id)
		delete(r.s.order, id)
		return nil
	})
}
