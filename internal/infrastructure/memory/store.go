// Package memory implementa los puertos de persistencia en memoria. Se usa con STORAGE_DRIVER=memory
// y en los tests; reproduce las restricciones de unicidad y de claves foráneas del esquema PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Store contiene todas las tablas. Un único RWMutex serializa las escrituras.
type Store struct {
	mu       sync.RWMutex
	seq      uint64
	order    map[string]uint64 // orden de inserción por id, para listados estables
	accounts map[string]entity.Account
	clients  map[string]entity.Client
	products map[string]entity.Product
	sales    map[string]entity.Sale
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		order:    make(map[string]uint64),
		accounts: make(map[string]entity.Account),
		clients:  make(map[string]entity.Client),
		products: make(map[string]entity.Product),
		sales:    make(map[string]entity.Sale),
	}
}

// Accounts devuelve el repositorio de cuentas.
func (s *Store) Accounts() *AccountRepo { return &AccountRepo{s: s} }

// Clients devuelve el repositorio de clientes.
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Sales devuelve el repositorio de ventas.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

// TxRunner devuelve el runner de transacciones de ventas.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// view ejecuta fn con lock de lectura salvo que el llamador ya tenga el lock (dentro de RunSale).
func (s *Store) view(locked bool, fn func()) {
	if !locked {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) update(locked bool, fn func() error) error {
	if !locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

func sortByInsertion[T any](s *Store, items []T, id func(T) string) {
	sort.Slice(items, func(i, j int) bool { return s.order[id(items[i])] < s.order[id(items[j])] })
}

var _ repository.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta la callback con el lock de escritura tomado y repos que no vuelven a bloquear.
// Si fn falla se restauran productos y ventas al estado previo.
type TxRunner struct {
	s *Store
}

// RunSale implementa repository.SaleTxRunner.
func (r *TxRunner) RunSale(ctx context.Context, fn func(products repository.ProductRepository, sales repository.SaleRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	products := cloneMap(s.products)
	sales := cloneMap(s.sales)
	order := cloneMap(s.order)
	seq := s.seq

	if err := fn(&ProductRepo{s: s, locked: true}, &SaleRepo{s: s, locked: true}); err != nil {
		s.products, s.sales, s.order, s.seq = products, sales, order, seq
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
