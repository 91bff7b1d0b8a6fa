package shipment

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/catalog"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
	"github.com/jhoicas/catalogo-interno/pkg/logger"
)

// Reconciler regenera los movimientos de los envíos a partir de sus líneas de catálogo.
// Implementa DraftListener.
type Reconciler struct {
	log *logger.Logger
	now func() time.Time
}

// CreateMoves reconcilia los movimientos de cada envío en una sola transacción.
func (uc *UseCase) CreateMoves(ctx context.Context, shipmentIDs []string) error {
	return uc.tx.Run(ctx, func(repos repository.Repos) error {
		shipments, err := repos.Shipments.GetByIDs(ctx, uniqueIDs(shipmentIDs))
		if err != nil {
			return err
		}
		return uc.reconciler.Reconcile(ctx, repos, shipments)
	})
}

// AfterDraft implementa DraftListener.
func (r *Reconciler) AfterDraft(ctx context.Context, repos repository.Repos, shipments []*entity.Shipment) error {
	return r.Reconcile(ctx, repos, shipments)
}

// Reconcile calcula los planes de todos los envíos y solo si ninguno tiene
// ubicaciones iguales elimina los movimientos obsoletos y crea los nuevos.
// Los envíos que no están en borrador o no tienen líneas se omiten.
func (r *Reconciler) Reconcile(ctx context.Context, repos repository.Repos, shipments []*entity.Shipment) error {
	now := r.now()

	// 1. Planificar sin mutar
	var plans []*catalog.MovePlan
	var sameLocations []string
	seen := make(map[string]struct{})
	for _, sh := range shipments {
		plan, err := r.plan(ctx, repos, sh, now)
		if err != nil {
			return err
		}
		if plan == nil {
			continue
		}
		for _, name := range plan.SameLocations {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				sameLocations = append(sameLocations, name)
			}
		}
		plans = append(plans, plan)
	}
	if len(sameLocations) > 0 {
		return &domain.SameLocationError{Locations: sameLocations}
	}

	// 2. Eliminar obsoletos (pasándolos antes a borrador)
	var staleIDs []string
	var toCreate []*entity.Move
	for _, p := range plans {
		staleIDs = append(staleIDs, p.StaleIDs()...)
		toCreate = append(toCreate, p.Create...)
	}
	if len(staleIDs) > 0 {
		if err := repos.Moves.SetState(ctx, staleIDs, entity.MoveStateDraft); err != nil {
			return err
		}
		if err := repos.Moves.Delete(ctx, staleIDs); err != nil {
			return err
		}
	}

	// 3. Crear los nuevos en lote
	if len(toCreate) > 0 {
		if err := repos.Moves.CreateBatch(ctx, toCreate); err != nil {
			return err
		}
	}
	r.log.Info().
		Int("shipments", len(plans)).
		Int("deleted", len(staleIDs)).
		Int("created", len(toCreate)).
		Msg("movimientos reconciliados")
	return nil
}

func (r *Reconciler) plan(ctx context.Context, repos repository.Repos, sh *entity.Shipment, now time.Time) (*catalog.MovePlan, error) {
	if !sh.IsDraft() {
		r.log.Debug().Str("shipment_id", sh.ID).Str("state", sh.State).Msg("envío omitido: no está en borrador")
		return nil, nil
	}
	lines, err := repos.Lines.ListByShipment(ctx, sh.ID)
	if err != nil {
		return nil, err
	}
	if catalog.Skipped(sh, lines) {
		return nil, nil
	}
	moves, err := repos.Moves.ListByOrigin(ctx, sh.ID, entity.OriginCatalogLine)
	if err != nil {
		return nil, err
	}
	catIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		catIDs = append(catIDs, l.CatalogueID)
	}
	catalogues, err := repos.Catalogues.GetByIDs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	products, err := repos.Products.GetByIDs(ctx, lineProductIDs(lines))
	if err != nil {
		return nil, err
	}
	return catalog.PlanMoves(sh, lines, moves, catalogues, products, now), nil
}
