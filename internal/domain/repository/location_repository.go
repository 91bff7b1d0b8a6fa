package repository

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para ubicaciones de stock (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.StockLocation) error
	GetByID(ctx context.Context, id string) (*entity.StockLocation, error)
	// GetByIDs devuelve las ubicaciones encontradas indexadas por ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.StockLocation, error)
}
