package repository

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
)

// CatalogueRepository define el puerto de persistencia para catálogos de ubicación.
// Las lecturas devuelven el catálogo con su ubicación y sus entradas en orden.
type CatalogueRepository interface {
	Create(ctx context.Context, catalogue *entity.Catalogue) error
	GetByID(ctx context.Context, id string) (*entity.Catalogue, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Catalogue, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.Catalogue, error)
}
