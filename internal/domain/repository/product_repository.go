package repository

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de productos y su unidad por defecto (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDs devuelve los productos encontrados indexados por ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}
