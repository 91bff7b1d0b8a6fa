package catalog

import (
	"time"

	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ExpandLines genera una línea por cada (catálogo, entrada), en el orden de catalogues
// y de sus entradas. Cada línea copia MaxQuantity de la entrada y arranca en cantidad 0.
func ExpandLines(shipmentID string, catalogues []*entity.Catalogue, now time.Time) []*entity.CatalogLine {
	var lines []*entity.CatalogLine
	seq := 0
	for _, c := range catalogues {
		if c == nil {
			continue
		}
		for _, e := range c.Entries {
			seq++
			lines = append(lines, &entity.CatalogLine{
				ShipmentID:  shipmentID,
				CatalogueID: c.ID,
				ProductID:   e.ProductID,
				Sequence:    seq,
				Quantity:    decimal.Zero,
				MaxQuantity: e.MaxQuantity,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
	}
	return lines
}
