package shipment

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain/catalog"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

// CreateLines expande los catálogos seleccionados de cada envío en líneas de catálogo.
// Los envíos que ya tienen líneas se omiten. Todas las líneas se crean en un solo lote
// dentro de una transacción.
func (uc *UseCase) CreateLines(ctx context.Context, shipmentIDs []string) error {
	return uc.tx.Run(ctx, func(repos repository.Repos) error {
		shipments, err := repos.Shipments.GetByIDs(ctx, uniqueIDs(shipmentIDs))
		if err != nil {
			return err
		}
		now := uc.now()

		var toCreate []*entity.CatalogLine
		skipped := 0
		for _, sh := range shipments {
			existing, err := repos.Lines.ListByShipment(ctx, sh.ID)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				skipped++
				continue
			}
			catalogues, err := orderedCatalogues(ctx, repos, sh.CatalogueIDs)
			if err != nil {
				return err
			}
			toCreate = append(toCreate, catalog.ExpandLines(sh.ID, catalogues, now)...)
		}
		if len(toCreate) == 0 {
			return nil
		}
		if err := uc.saveLines(ctx, repos, toCreate, true); err != nil {
			return err
		}
		uc.log.Info().
			Int("shipments", len(shipments)).
			Int("skipped", skipped).
			Int("lines", len(toCreate)).
			Msg("líneas de catálogo creadas")
		return nil
	})
}

// orderedCatalogues devuelve los catálogos en el orden de selección.
func orderedCatalogues(ctx context.Context, repos repository.Repos, ids []string) ([]*entity.Catalogue, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := repos.Catalogues.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Catalogue, 0, len(ids))
	for _, id := range ids {
		if c, ok := found[id]; ok {
			list = append(list, c)
		}
	}
	return list, nil
}
