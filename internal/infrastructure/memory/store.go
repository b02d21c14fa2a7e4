package memory

import (
	"context"
	"sync"

	"github.com/tu-usuario/pos-kardex/internal/application/inventory"
	"github.com/tu-usuario/pos-kardex/internal/application/sales"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// Ensure Store implementa los puertos de transacción.
var _ inventory.TxRunner = (*Store)(nil)
var _ sales.SaleTxRunner = (*Store)(nil)

// Store persistencia en memoria para modo desarrollo y tests.
// Las transacciones se serializan con un mutex global y operan sobre una copia
// del estado: si la función falla, la copia se descarta (rollback); si termina
// bien, la copia reemplaza al estado (commit). El kardex es estrictamente
// append-only: nunca se edita ni se elimina un registro.
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	products  map[string]entity.Product
	kardex    map[string][]entity.KardexEntry // en orden de escritura por producto
	sales     map[string]entity.Sale
	saleOrder []string
}

// New crea un Store vacío.
func New() *Store {
	return &Store{state: &state{
		products: make(map[string]entity.Product),
		kardex:   make(map[string][]entity.KardexEntry),
		sales:    make(map[string]entity.Sale),
	}}
}

func (s *state) clone() *state {
	cp := &state{
		products:  make(map[string]entity.Product, len(s.products)),
		kardex:    make(map[string][]entity.KardexEntry, len(s.kardex)),
		sales:     make(map[string]entity.Sale, len(s.sales)),
		saleOrder: append([]string(nil), s.saleOrder...),
	}
	for id, p := range s.products {
		cp.products[id] = p
	}
	for id, entries := range s.kardex {
		cp.kardex[id] = append([]entity.KardexEntry(nil), entries...)
	}
	for id, sl := range s.sales {
		sl.Items = append([]entity.SaleItem(nil), sl.Items...)
		cp.sales[id] = sl
	}
	return cp
}

// Run ejecuta fn sobre una copia del estado y confirma solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	kardexRepo repository.KardexRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.state.clone()
	if err := fn(&productView{staged}, &kardexView{staged}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

// RunSale igual que Run, incluyendo el repositorio de ventas.
func (s *Store) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	kardexRepo repository.KardexRepository,
	saleRepo repository.SaleRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.state.clone()
	if err := fn(&productView{staged}, &kardexView{staged}, &saleView{staged}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

func (s *Store) withLock(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}
