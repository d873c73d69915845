package memory

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria.
type ClientRepo struct {
	s *Store
}

// Create persiste un cliente. El nombre es único y la cuenta debe existir.
func (r *ClientRepo) Create(_ context.Context, client *entity.Client) error {
	return r.s.update(false, func() error {
		if _, ok := r.s.accounts[client.AccountID]; !ok {
			return domain.ErrAccountNotFound
		}
		if r.nameTaken(client.ID, client.Name) {
			return domain.ErrDuplicate
		}
		r.s.clients[client.ID] = *client
		r.s.track(client.ID)
		return nil
	})
}

func (r *ClientRepo) nameTaken(id, name string) bool {
	for _, c := range r.s.clients {
		if c.ID != id && c.Name == name {
			return true
		}
	}
	return false
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	r.s.view(false, func() {
		if c, ok := r.s.clients[id]; ok {
			out = &c
		}
	})
	return out, nil
}

// GetByName obtiene un cliente por nombre exacto.
func (r *ClientRepo) GetByName(_ context.Context, name string) (*entity.Client, error) {
	var out *entity.Client
	r.s.view(false, func() {
		for _, c := range r.s.clients {
			if c.Name == name {
				c := c
				out = &c
				return
			}
		}
	})
	return out, nil
}

// List lista todos los clientes en orden de creación.
func (r *ClientRepo) List(_ context.Context) ([]*entity.Client, error) {
	var list []*entity.Client
	r.s.view(false, func() {
		for _, c := range r.s.clients {
			c := c
			list = append(list, &c)
		}
		sortByInsertion(r.s, list, func(c *entity.Client) string { return c.ID })
	})
	return list, nil
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(_ context.Context, client *entity.Client) error {
	return r.s.update(false, func() error {
		current, ok := r.s.clients[client.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if r.nameTaken(client.ID, client.Name) {
			return domain.ErrDuplicate
		}
		updated := *client
		updated.AccountID = current.AccountID
		updated.CreatedAt = current.CreatedAt
		r.s.clients[client.ID] = updated
		return nil
	})
}

// Delete elimina un cliente. Falla con ErrInUse si tiene ventas.
func (r *ClientRepo) Delete(_ context.Context, id string) error {
	return r.s.update(false, func() error {
		if _, ok := r.s.clients[id]; !ok {
			return domain.ErrNotFound
		}
		for _, sale := range r.s.sales {
			if sale.ClientID == id {
				return domain.ErrInUse
			}
		}
		delete(r.s.clients, id)
		delete(r.s.order, id)
		return nil
	})
}
