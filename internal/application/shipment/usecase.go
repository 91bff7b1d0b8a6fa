package shipment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/catalogo-interno/internal/application/dto"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/catalog"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
	"github.com/jhoicas/catalogo-interno/pkg/logger"
)

// Config parámetros explícitos del flujo de envíos internos.
type Config struct {
	// DefaultToLocationID destino usado cuando un envío se crea sin destino.
	DefaultToLocationID string
}

// UseCase casos de uso de envíos internos con catálogo: expansión de líneas,
// edición de cantidades, reconciliación de movimientos y vuelta a borrador.
type UseCase struct {
	tx         TxRunner
	log        *logger.Logger
	cfg        Config
	validators []LineValidator
	listeners  []DraftListener
	reconciler *Reconciler
	now        func() time.Time
}

// NewUseCase construye el caso de uso. Registra el validador de cantidad máxima
// y el reconciliador como listener de la vuelta a borrador.
func NewUseCase(tx TxRunner, log *logger.Logger, cfg Config) *UseCase {
	uc := &UseCase{
		tx:  tx,
		log: log,
		cfg: cfg,
		now: time.Now,
	}
	uc.reconciler = &Reconciler{log: log, now: func() time.Time { return uc.now() }}
	uc.validators = []LineValidator{CapValidator{}}
	uc.listeners = []DraftListener{uc.reconciler}
	return uc
}

// AddLineValidator registra un validador adicional de líneas.
func (uc *UseCase) AddLineValidator(v LineValidator) {
	uc.validators = append(uc.validators, v)
}

// AddDraftListener registra un listener adicional de vuelta a borrador.
func (uc *UseCase) AddDraftListener(l DraftListener) {
	uc.listeners = append(uc.listeners, l)
}

// Create crea un envío interno en borrador con los catálogos seleccionados.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if in.ToLocationID == "" {
		in.ToLocationID = uc.cfg.DefaultToLocationID
	}
	if companyID == "" || in.FromLocationID == "" || in.ToLocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	sh := &entity.Shipment{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		Reference:         in.Reference,
		State:             entity.ShipmentStateDraft,
		FromLocationID:    in.FromLocationID,
		ToLocationID:      in.ToLocationID,
		TransitLocationID: in.TransitLocationID,
		EmployeeID:        in.EmployeeID,
		CatalogueIDs:      in.CatalogueIDs,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	var out *dto.ShipmentResponse
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		locIDs := []string{sh.FromLocationID, sh.ToLocationID}
		if sh.TransitLocationID != "" {
			locIDs = append(locIDs, sh.TransitLocationID)
		}
		locs, err := repos.Locations.GetByIDs(ctx, locIDs)
		if err != nil {
			return err
		}
		for _, id := range locIDs {
			if _, ok := locs[id]; !ok {
				return domain.ErrNotFound
			}
		}
		if err := checkCatalogues(ctx, repos, sh, sh.CatalogueIDs); err != nil {
			return err
		}
		if err := repos.Shipments.Create(ctx, sh); err != nil {
			return err
		}
		out, err = uc.load(ctx, repos, sh.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SelectCatalogues reemplaza los catálogos seleccionados del envío.
func (uc *UseCase) SelectCatalogues(ctx context.Context, shipmentID string, catalogueIDs []string) (*dto.ShipmentResponse, error) {
	var out *dto.ShipmentResponse
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		sh, err := repos.Shipments.GetByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		if sh == nil {
			return domain.ErrNotFound
		}
		if sh.State == entity.ShipmentStateDone || sh.State == entity.ShipmentStateCancel {
			return domain.ErrConflict
		}
		if err := checkCatalogues(ctx, repos, sh, catalogueIDs); err != nil {
			return err
		}
		if err := repos.Shipments.SetCatalogues(ctx, sh.ID, catalogueIDs); err != nil {
			return err
		}
		out, err = uc.load(ctx, repos, sh.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get obtiene un envío con sus líneas de catálogo y movimientos.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	var out *dto.ShipmentResponse
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		out, err = uc.load(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un envío en borrador o cancelado junto con sus movimientos;
// las líneas de catálogo se eliminan en cascada.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Repos) error {
		sh, err := repos.Shipments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sh == nil {
			return domain.ErrNotFound
		}
		if sh.State != entity.ShipmentStateDraft && sh.State != entity.ShipmentStateCancel {
			return domain.ErrConflict
		}
		moves, err := repos.Moves.ListByShipment(ctx, id)
		if err != nil {
			return err
		}
		if len(moves) > 0 {
			if err := repos.Moves.SetState(ctx, moveIDs(moves), entity.MoveStateDraft); err != nil {
				return err
			}
			if err := repos.Moves.Delete(ctx, moveIDs(moves)); err != nil {
				return err
			}
		}
		return repos.Shipments.Delete(ctx, id)
	})
}

// load arma la respuesta con los campos derivados de cada línea.
func (uc *UseCase) load(ctx context.Context, repos repository.Repos, id string) (*dto.ShipmentResponse, error) {
	sh, err := repos.Shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := repos.Lines.ListByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	moves, err := repos.Moves.ListByShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := repos.Products.GetByIDs(ctx, lineProductIDs(lines))
	if err != nil {
		return nil, err
	}

	out := &dto.ShipmentResponse{
		ID:                sh.ID,
		CompanyID:         sh.CompanyID,
		Reference:         sh.Reference,
		State:             sh.State,
		FromLocationID:    sh.FromLocationID,
		ToLocationID:      sh.ToLocationID,
		TransitLocationID: sh.TransitLocationID,
		EmployeeID:        sh.EmployeeID,
		CatalogueIDs:      sh.CatalogueIDs,
		CatalogLines:      make([]dto.CatalogLineResponse, 0, len(lines)),
		Moves:             make([]dto.MoveResponse, 0, len(moves)),
		CreatedAt:         sh.CreatedAt,
		UpdatedAt:         sh.UpdatedAt,
	}
	if out.CatalogueIDs == nil {
		out.CatalogueIDs = []string{}
	}
	for _, l := range lines {
		p := products[l.ProductID]
		item := dto.CatalogLineResponse{
			ID:             l.ID,
			CatalogueID:    l.CatalogueID,
			ProductID:      l.ProductID,
			Quantity:       p.Round(l.Quantity),
			MaxQuantity:    p.Round(l.MaxQuantity),
			ServedQuantity: catalog.ServedQuantity(l, moves, p),
			MoveState:      catalog.LineMoveState(l, moves),
		}
		if p != nil {
			item.ProductName = p.Name
			item.Unit = p.DefaultUoM.Name
			item.UnitDigits = p.DefaultUoM.Digits
		}
		out.CatalogLines = append(out.CatalogLines, item)
	}
	for _, m := range moves {
		out.Moves = append(out.Moves, dto.MoveResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			Quantity:       m.Quantity,
			State:          m.State,
			OriginKind:     m.OriginKind,
			OriginID:       m.OriginID,
		})
	}
	return out, nil
}

func checkCatalogues(ctx context.Context, repos repository.Repos, sh *entity.Shipment, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := repos.Catalogues.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	list := make([]*entity.Catalogue, 0, len(ids))
	for _, id := range ids {
		c, ok := found[id]
		if !ok {
			return domain.ErrNotFound
		}
		if c.CompanyID != sh.CompanyID {
			return domain.ErrForbidden
		}
		list = append(list, c)
	}
	if bad := catalog.CheckCatalogues(sh, list); bad != nil {
		return fmt.Errorf("catálogo %q: %w", bad.Name, domain.ErrCatalogueLocationMismatch)
	}
	return nil
}

func lineProductIDs(lines []*entity.CatalogLine) []string {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

// uniqueIDs elimina ids repetidos conservando el orden de primera aparición.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
