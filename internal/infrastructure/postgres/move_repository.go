package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

var _ repository.MoveRepository = (*MoveRepo)(nil)

// MoveRepo implementación del puerto MoveRepository sobre PostgreSQL.
type MoveRepo struct {
	q Querier
}

// NewMoveRepository construye el adaptador de persistencia para movimientos de stock.
func NewMoveRepository(q Querier) *MoveRepo {
	return &MoveRepo{q: q}
}

const moveColumns = `m.id, m.shipment_id, m.company_id, m.product_id, m.uom_id, m.from_location_id, m.to_location_id,
	m.quantity, m.state, m.origin_kind, m.origin_id, m.created_at, m.updated_at`

// CreateBatch inserta los movimientos en un solo pgx.Batch.
func (r *MoveRepo) CreateBatch(ctx context.Context, moves []*entity.Move) error {
	batch := &pgx.Batch{}
	for _, m := range moves {
		m.ID = newID(m.ID)
		batch.Queue(`
			INSERT INTO stock_moves (id, shipment_id, company_id, product_id, uom_id, from_location_id, to_location_id,
			                         quantity, state, origin_kind, origin_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			m.ID, m.ShipmentID, m.CompanyID, m.ProductID, nullable(m.UnitID), m.FromLocationID, m.ToLocationID,
			m.Quantity, m.State, m.OriginKind, nullable(m.OriginID), m.CreatedAt, m.UpdatedAt)
	}
	return execBatch(ctx, r.q, "insert stock moves", batch)
}

// ListByShipment lista todos los movimientos del envío en orden de creación.
func (r *MoveRepo) ListByShipment(ctx context.Context, shipmentID string) ([]*entity.Move, error) {
	return r.list(ctx, `SELECT `+moveColumns+` FROM stock_moves m
		WHERE m.shipment_id = $1 ORDER BY m.created_at, m.id`, shipmentID)
}

// ListByOrigin lista los movimientos del envío con el tipo de origen indicado.
func (r *MoveRepo) ListByOrigin(ctx context.Context, shipmentID, originKind string) ([]*entity.Move, error) {
	return r.list(ctx, `SELECT `+moveColumns+` FROM stock_moves m
		WHERE m.shipment_id = $1 AND m.origin_kind = $2 ORDER BY m.created_at, m.id`, shipmentID, originKind)
}

// ListTransitLegs lista los tramos hacia tránsito cuyo movimiento padre proviene de una línea de catálogo.
func (r *MoveRepo) ListTransitLegs(ctx context.Context, shipmentID, transitLocationID string) ([]*entity.Move, error) {
	return r.list(ctx, `SELECT `+moveColumns+` FROM stock_moves m
		JOIN stock_moves parent ON parent.id = m.origin_id
		WHERE m.shipment_id = $1 AND m.to_location_id = $2 AND m.origin_kind = $3
		  AND parent.origin_kind = $4 AND parent.origin_id IS NOT NULL
		ORDER BY m.created_at, m.id`,
		shipmentID, transitLocationID, entity.OriginMove, entity.OriginCatalogLine)
}

// SetState cambia el estado de los movimientos indicados.
func (r *MoveRepo) SetState(ctx context.Context, ids []string, state string) error {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_moves SET state = $2, updated_at = now() WHERE id = ANY($1::uuid[])`, ids, state)
	if err != nil {
		return mapError("update stock moves state", err)
	}
	if int(cmd.RowsAffected()) != len(ids) {
		return fmt.Errorf("update stock moves state: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete elimina movimientos; solo se permiten en borrador o cancelados.
func (r *MoveRepo) Delete(ctx context.Context, ids []string) error {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	var blocked int
	err := r.q.QueryRow(ctx, `
		SELECT count(*) FROM stock_moves WHERE id = ANY($1::uuid[]) AND state NOT IN ($2, $3)`,
		ids, entity.MoveStateDraft, entity.MoveStateCancel).Scan(&blocked)
	if err != nil {
		return mapError("delete stock moves", err)
	}
	if blocked > 0 {
		return fmt.Errorf("delete stock moves: %d en estado no eliminable: %w", blocked, domain.ErrConflict)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_moves WHERE id = ANY($1::uuid[])`, ids); err != nil {
		return mapError("delete stock moves", err)
	}
	return nil
}

func (r *MoveRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Move, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.Move
	for rows.Next() {
		var m entity.Move
		var unitID, originID *string
		if err := rows.Scan(&m.ID, &m.ShipmentID, &m.CompanyID, &m.ProductID, &unitID, &m.FromLocationID,
			&m.ToLocationID, &m.Quantity, &m.State, &m.OriginKind, &originID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		m.UnitID = deref(unitID)
		m.OriginID = deref(originID)
		list = append(list, &m)
	}
	return list, rows.Err()
}
