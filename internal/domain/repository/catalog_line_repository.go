package repository

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
)

// CatalogLineRepository define el puerto de persistencia para líneas de catálogo de un envío.
type CatalogLineRepository interface {
	// CreateBatch inserta todas las líneas en una sola operación.
	CreateBatch(ctx context.Context, lines []*entity.CatalogLine) error
	Update(ctx context.Context, line *entity.CatalogLine) error
	GetByID(ctx context.Context, id string) (*entity.CatalogLine, error)
	ListByShipment(ctx context.Context, shipmentID string) ([]*entity.CatalogLine, error)
}
