package catalog

import (
	"time"

	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
)

// MovePlan es el resultado de reconciliar un envío: movimientos a eliminar y a crear.
type MovePlan struct {
	ShipmentID string
	Stale      []*entity.Move
	Create     []*entity.Move
	// SameLocations nombres de ubicaciones donde origen y destino coinciden.
	SameLocations []string
}

// Skipped indica si el envío no se reconcilia (no está en borrador o no tiene líneas).
func Skipped(shipment *entity.Shipment, lines []*entity.CatalogLine) bool {
	return !shipment.IsDraft() || len(lines) == 0
}

// StaleMoves devuelve los movimientos generados desde líneas de catálogo que
// siguen en borrador o cancelados. Los demás no se tocan.
func StaleMoves(moves []*entity.Move) []*entity.Move {
	var stale []*entity.Move
	for _, m := range moves {
		if m.FromCatalogLine() && m.Reconcilable() {
			stale = append(stale, m)
		}
	}
	return stale
}

// PlanMoves construye un movimiento por cada línea con cantidad positiva.
// Si el origen de una línea coincide con el destino del envío se registra la ubicación
// en SameLocations y se deja de construir movimientos para ese envío.
func PlanMoves(
	shipment *entity.Shipment,
	lines []*entity.CatalogLine,
	moves []*entity.Move,
	catalogues map[string]*entity.Catalogue,
	products map[string]*entity.Product,
	now time.Time,
) *MovePlan {
	plan := &MovePlan{ShipmentID: shipment.ID, Stale: StaleMoves(moves)}
	for _, l := range lines {
		if !l.Requested() {
			continue
		}
		var fromID string
		var from *entity.StockLocation
		if c, ok := catalogues[l.CatalogueID]; ok {
			fromID = c.LocationID
			from = c.Location
		}
		if fromID == shipment.ToLocationID {
			name := fromID
			if from != nil {
				name = from.RecName()
			}
			plan.SameLocations = append(plan.SameLocations, name)
			break
		}
		var unitID string
		if p, ok := products[l.ProductID]; ok {
			unitID = p.DefaultUoM.ID
		}
		plan.Create = append(plan.Create, &entity.Move{
			ShipmentID:     shipment.ID,
			CompanyID:      shipment.CompanyID,
			ProductID:      l.ProductID,
			UnitID:         unitID,
			FromLocationID: fromID,
			ToLocationID:   shipment.ToLocationID,
			Quantity:       l.Quantity,
			State:          entity.MoveStateDraft,
			OriginKind:     entity.OriginCatalogLine,
			OriginID:       l.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return plan
}

// StaleIDs devuelve los IDs de los movimientos a eliminar.
func (p *MovePlan) StaleIDs() []string {
	ids := make([]string, 0, len(p.Stale))
	for _, m := range p.Stale {
		ids = append(ids, m.ID)
	}
	return ids
}
