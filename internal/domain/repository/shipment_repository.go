package repository

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
)

// ShipmentRepository define el puerto de persistencia para envíos internos.
// Las lecturas cargan CatalogueIDs pero no CatalogLines ni Moves.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	// GetByIDs respeta el orden de ids; devuelve domain.ErrNotFound si falta alguno.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Shipment, error)
	UpdateState(ctx context.Context, id, state string) error
	SetCatalogues(ctx context.Context, id string, catalogueIDs []string) error
	// Delete elimina el envío; sus líneas de catálogo se eliminan en cascada.
	Delete(ctx context.Context, id string) error
}
