// Package memory implementa los puertos de persistencia en memoria con transacciones
// de copia: cada Run trabaja sobre un clon del estado y solo lo publica si fn no falla.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/catalogo-interno/internal/application/catalogue"
	"github.com/jhoicas/catalogo-interno/internal/application/shipment"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

var (
	_ shipment.TxRunner  = (*Store)(nil)
	_ catalogue.TxRunner = (*Store)(nil)
)

type state struct {
	users      map[string]entity.User
	locations  map[string]entity.StockLocation
	products   map[string]entity.Product
	catalogues map[string]entity.Catalogue
	shipments  map[string]entity.Shipment
	lines      map[string]entity.CatalogLine
	moves      map[string]entity.Move
	// orden de inserción para listados estables
	catalogueOrder []string
	lineOrder      []string
	moveOrder      []string
}

func newState() *state {
	return &state{
		users:      map[string]entity.User{},
		locations:  map[string]entity.StockLocation{},
		products:   map[string]entity.Product{},
		catalogues: map[string]entity.Catalogue{},
		shipments:  map[string]entity.Shipment{},
		lines:      map[string]entity.CatalogLine{},
		moves:      map[string]entity.Move{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.catalogues {
		v.Entries = append([]entity.CatalogueEntry(nil), v.Entries...)
		c.catalogues[k] = v
	}
	for k, v := range s.shipments {
		v.CatalogueIDs = append([]string(nil), v.CatalogueIDs...)
		c.shipments[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = v
	}
	for k, v := range s.moves {
		c.moves[k] = v
	}
	c.catalogueOrder = append([]string(nil), s.catalogueOrder...)
	c.lineOrder = append([]string(nil), s.lineOrder...)
	c.moveOrder = append([]string(nil), s.moveOrder...)
	return c
}

// Store almacenamiento en memoria serializado por un mutex.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre un clon del estado y lo confirma solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(work.repos()); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *state) repos() repository.Repos {
	return repository.Repos{
		Users:      &userRepo{s: s},
		Locations:  &locationRepo{s: s},
		Products:   &productRepo{s: s},
		Catalogues: &catalogueRepo{s: s},
		Shipments:  &shipmentRepo{s: s},
		Lines:      &lineRepo{s: s},
		Moves:      &moveRepo{s: s},
	}
}

func removeIDs(order []string, drop map[string]struct{}) []string {
	out := order[:0]
	for _, id := range order {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
