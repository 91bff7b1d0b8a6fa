package repository

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
)

// MoveRepository define el puerto de persistencia para movimientos de stock.
type MoveRepository interface {
	CreateBatch(ctx context.Context, moves []*entity.Move) error
	ListByShipment(ctx context.Context, shipmentID string) ([]*entity.Move, error)
	// ListByOrigin lista los movimientos del envío con el tipo de origen indicado.
	ListByOrigin(ctx context.Context, shipmentID, originKind string) ([]*entity.Move, error)
	// ListTransitLegs lista los movimientos hacia la ubicación de tránsito cuyo origen
	// es otro movimiento generado desde una línea de catálogo.
	ListTransitLegs(ctx context.Context, shipmentID, transitLocationID string) ([]*entity.Move, error)
	SetState(ctx context.Context, ids []string, state string) error
	Delete(ctx context.Context, ids []string) error
}
