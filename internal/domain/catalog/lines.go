package catalog

import (
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ServedQuantity devuelve la cantidad del primer movimiento del envío con el mismo
// producto que la línea, truncada a los dígitos de la unidad. 0 si no hay ninguno.
func ServedQuantity(line *entity.CatalogLine, moves []*entity.Move, product *entity.Product) decimal.Decimal {
	for _, m := range moves {
		if m.ProductID == line.ProductID {
			return product.Truncate(m.Quantity)
		}
	}
	return decimal.Zero
}

// LineMoveState estado de los movimientos generados desde una línea:
// vacío si no hay, el estado del único movimiento, o el primero no cancelado.
func LineMoveState(line *entity.CatalogLine, moves []*entity.Move) string {
	var states []string
	for _, m := range moves {
		if m.FromCatalogLine() && m.OriginID == line.ID {
			states = append(states, m.State)
		}
	}
	switch len(states) {
	case 0:
		return ""
	case 1:
		return states[0]
	}
	for _, s := range states {
		if s != entity.MoveStateCancel {
			return s
		}
	}
	return entity.MoveStateCancel
}

// CheckCatalogues verifica que los catálogos pertenezcan a la ubicación origen
// mientras el envío esté en borrador o en espera. Devuelve el primer catálogo que no cumple.
func CheckCatalogues(shipment *entity.Shipment, catalogues []*entity.Catalogue) *entity.Catalogue {
	if !shipment.CataloguesRestricted() {
		return nil
	}
	for _, c := range catalogues {
		if c.LocationID != shipment.FromLocationID {
			return c
		}
	}
	return nil
}
