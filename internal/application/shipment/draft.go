package shipment

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

// draftFrom estados desde los que un envío puede volver a borrador.
var draftFrom = map[string]bool{
	entity.ShipmentStateDraft:   true,
	entity.ShipmentStateWaiting: true,
	entity.ShipmentStateCancel:  true,
}

// RevertToDraft devuelve los envíos a borrador y luego notifica a los DraftListener
// (entre ellos el reconciliador). Todo ocurre en una sola transacción.
func (uc *UseCase) RevertToDraft(ctx context.Context, shipmentIDs []string) error {
	return uc.tx.Run(ctx, func(repos repository.Repos) error {
		shipments, err := repos.Shipments.GetByIDs(ctx, uniqueIDs(shipmentIDs))
		if err != nil {
			return err
		}
		for _, sh := range shipments {
			if !draftFrom[sh.State] {
				return fmt.Errorf("envío %s en estado %s: %w", sh.ID, sh.State, domain.ErrInvalidTransition)
			}
		}

		// Los tramos hacia tránsito generados desde movimientos de catálogo se eliminan
		for _, sh := range shipments {
			if sh.TransitLocationID == "" {
				continue
			}
			legs, err := repos.Moves.ListTransitLegs(ctx, sh.ID, sh.TransitLocationID)
			if err != nil {
				return err
			}
			if len(legs) == 0 {
				continue
			}
			if err := repos.Moves.SetState(ctx, moveIDs(legs), entity.MoveStateDraft); err != nil {
				return err
			}
			if err := repos.Moves.Delete(ctx, moveIDs(legs)); err != nil {
				return err
			}
		}

		for _, sh := range shipments {
			if sh.IsDraft() {
				continue
			}
			moves, err := repos.Moves.ListByShipment(ctx, sh.ID)
			if err != nil {
				return err
			}
			var pending []*entity.Move
			for _, m := range moves {
				if m.State != entity.MoveStateDone && m.State != entity.MoveStateDraft {
					pending = append(pending, m)
				}
			}
			if len(pending) > 0 {
				if err := repos.Moves.SetState(ctx, moveIDs(pending), entity.MoveStateDraft); err != nil {
					return err
				}
			}
			if err := repos.Shipments.UpdateState(ctx, sh.ID, entity.ShipmentStateDraft); err != nil {
				return err
			}
			sh.State = entity.ShipmentStateDraft
		}

		for _, l := range uc.listeners {
			if err := l.AfterDraft(ctx, repos, shipments); err != nil {
				return err
			}
		}
		return nil
	})
}

func moveIDs(moves []*entity.Move) []string {
	ids := make([]string, 0, len(moves))
	for _, m := range moves {
		ids = append(ids, m.ID)
	}
	return ids
}
