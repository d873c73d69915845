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

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo     repository.ClientRepository
	accounts repository.AccountRepository
	now      func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, accounts repository.AccountRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, accounts: accounts, now: time.Now}
}

// Create crea un cliente propiedad del actor. Devuelve ErrAccountNotFound si user no resuelve
// a una cuenta activa y ErrDuplicate si el nombre ya existe.
func (uc *ClientUseCase) Create(ctx context.Context, actor entity.Identity, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
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
	client := &entity.Client{
		ID:        uuid.New().String(),
		AccountID: ownerID,
		Name:      in.Name,
		Document:  in.Document,
		Email:     in.Email,
		Number:    in.Number,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista todos los clientes (público, sin paginación).
func (uc *ClientUseCase) List(ctx context.Context) (*dto.ClientListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{Clients: items}, nil
}

// GetByID obtiene un cliente. Ids mal formados o inexistentes devuelven ErrNotFound.
func (uc *ClientUseCase) GetByID(ctx context.Context, actor entity.Identity, id string) (*dto.ClientResponse, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	client, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(actor.AccountID, client.AccountID, policy.ActionRead); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update aplica un patch. ErrOwnershipTamper si intenta cambiar user; ErrForbidden si el actor
// no es el propietario.
func (uc *ClientUseCase) Update(ctx context.Context, actor entity.Identity, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	client, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if changesOwner(in.User, client.AccountID) {
		return nil, domain.ErrOwnershipTamper
	}
	if err := policy.Require(actor.AccountID, client.AccountID, policy.ActionUpdate); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != client.Name {
		existing, err := uc.repo.GetByName(ctx, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		client.Name = *in.Name
	}
	if in.Document != nil {
		client.Document = *in.Document
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Number != nil {
		client.Number = *in.Number
	}
	client.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente del actor. ErrInUse si tiene ventas.
func (uc *ClientUseCase) Delete(ctx context.Context, actor entity.Identity, id string) error {
	if err := requireActive(actor); err != nil {
		return err
	}
	client, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Require(actor.AccountID, client.AccountID, policy.ActionDelete); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, client.ID)
}

func (uc *ClientUseCase) load(ctx context.Context, id string) (*entity.Client, error) {
	clientID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	client, err := uc.repo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Email:     c.Email,
		Number:    c.Number,
		User:      c.AccountID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
