package catalog

import (
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
)

// ValidateLines falla con *domain.QuantityExceedsCapacityError en la primera línea
// cuya cantidad supera el máximo. products se usa solo para nombrar el producto.
func ValidateLines(lines []*entity.CatalogLine, products map[string]*entity.Product) error {
	for _, l := range lines {
		if !l.ExceedsCap() {
			continue
		}
		name := l.ProductID
		if p, ok := products[l.ProductID]; ok {
			name = p.RecName()
		}
		return &domain.QuantityExceedsCapacityError{Product: name, Cap: l.MaxQuantity}
	}
	return nil
}
