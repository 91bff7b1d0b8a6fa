package shipment

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/catalog"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CapValidator rechaza líneas cuya cantidad supera la cantidad máxima del catálogo.
type CapValidator struct{}

// ValidateLines implementa LineValidator.
func (CapValidator) ValidateLines(ctx context.Context, repos repository.Repos, lines []*entity.CatalogLine) error {
	var over []*entity.CatalogLine
	for _, l := range lines {
		if l.ExceedsCap() {
			over = append(over, l)
		}
	}
	if len(over) == 0 {
		return nil
	}
	products, err := repos.Products.GetByIDs(ctx, lineProductIDs(over))
	if err != nil {
		return err
	}
	return catalog.ValidateLines(over, products)
}

// UpdateLineQuantity cambia la cantidad pedida de una línea. Solo se permite con el envío en borrador.
func (uc *UseCase) UpdateLineQuantity(ctx context.Context, shipmentID, lineID string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(repos repository.Repos) error {
		sh, err := repos.Shipments.GetByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		if sh == nil {
			return domain.ErrNotFound
		}
		line, err := repos.Lines.GetByID(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil || line.ShipmentID != sh.ID {
			return domain.ErrNotFound
		}
		if !sh.IsDraft() {
			return domain.ErrShipmentNotDraft
		}
		line.Quantity = quantity
		line.UpdatedAt = uc.now()
		return uc.saveLines(ctx, repos, []*entity.CatalogLine{line}, false)
	})
}

// saveLines pasa las líneas por los validadores y luego las persiste.
func (uc *UseCase) saveLines(ctx context.Context, repos repository.Repos, lines []*entity.CatalogLine, create bool) error {
	for _, v := range uc.validators {
		if err := v.ValidateLines(ctx, repos, lines); err != nil {
			return err
		}
	}
	if create {
		return repos.Lines.CreateBatch(ctx, lines)
	}
	for _, l := range lines {
		if err := repos.Lines.Update(ctx, l); err != nil {
			return err
		}
	}
	return nil
}
