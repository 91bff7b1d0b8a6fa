package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación del puerto ShipmentRepository sobre PostgreSQL.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de persistencia para envíos internos.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentSelect = `
	SELECT s.id, s.company_id, s.reference, s.state, s.from_location_id, s.to_location_id,
	       s.transit_location_id, s.employee_id, s.created_at, s.updated_at,
	       COALESCE(ARRAY(
	           SELECT sc.catalogue_id::text FROM internal_shipment_catalogues sc
	           WHERE sc.shipment_id = s.id ORDER BY sc.position), '{}')
	FROM internal_shipments s`

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var sh entity.Shipment
	var transit, employee *string
	err := row.Scan(&sh.ID, &sh.CompanyID, &sh.Reference, &sh.State, &sh.FromLocationID, &sh.ToLocationID,
		&transit, &employee, &sh.CreatedAt, &sh.UpdatedAt, &sh.CatalogueIDs)
	if err != nil {
		return nil, err
	}
	sh.TransitLocationID = deref(transit)
	sh.EmployeeID = deref(employee)
	return &sh, nil
}

// Create persiste el envío y su selección de catálogos.
func (r *ShipmentRepo) Create(ctx context.Context, sh *entity.Shipment) error {
	sh.ID = newID(sh.ID)
	if sh.State == "" {
		sh.State = entity.ShipmentStateDraft
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO internal_shipments (id, company_id, reference, state, from_location_id, to_location_id,
		                                transit_location_id, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING created_at, updated_at`,
		sh.ID, sh.CompanyID, sh.Reference, sh.State, sh.FromLocationID, sh.ToLocationID,
		nullable(sh.TransitLocationID), nullable(sh.EmployeeID),
	).Scan(&sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return mapError("insert shipment", err)
	}
	return r.SetCatalogues(ctx, sh.ID, sh.CatalogueIDs)
}

// GetByID obtiene un envío con sus catálogos seleccionados. Devuelve nil si no existe.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	sh, err := scanShipment(r.q.QueryRow(ctx, shipmentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get shipment", err)
	}
	return sh, nil
}

// GetByIDs obtiene los envíos en el orden de ids y bloquea sus filas hasta el fin de la transacción.
func (r *ShipmentRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Shipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if slices.Contains(ids, "") {
		return nil, fmt.Errorf("shipment vacío: %w", domain.ErrNotFound)
	}
	ids = compactIDs(ids)
	rows, err := r.q.Query(ctx, shipmentSelect+` WHERE s.id = ANY($1::uuid[]) FOR UPDATE OF s`, ids)
	if err != nil {
		return nil, mapError("list shipments", err)
	}
	defer rows.Close()
	byID := make(map[string]*entity.Shipment, len(ids))
	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		byID[sh.ID] = sh
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	list := make([]*entity.Shipment, 0, len(ids))
	for _, id := range ids {
		sh, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("shipment %s: %w", id, domain.ErrNotFound)
		}
		list = append(list, sh)
	}
	return list, nil
}

// UpdateState cambia el estado del envío.
func (r *ShipmentRepo) UpdateState(ctx context.Context, id, state string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE internal_shipments SET state = $2, updated_at = now() WHERE id = $1`, id, state)
	if err != nil {
		return fmt.Errorf("update shipment state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("shipment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetCatalogues reemplaza la selección de catálogos conservando el orden recibido.
func (r *ShipmentRepo) SetCatalogues(ctx context.Context, id string, catalogueIDs []string) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM internal_shipment_catalogues WHERE shipment_id = $1`, id)
	for i, cid := range catalogueIDs {
		batch.Queue(`
			INSERT INTO internal_shipment_catalogues (shipment_id, catalogue_id, position)
			VALUES ($1, $2, $3)`, id, cid, i)
	}
	return execBatch(ctx, r.q, "set shipment catalogues", batch)
}

// Delete elimina el envío; líneas y selección de catálogos se eliminan en cascada.
// Falla con ErrConflict si aún tiene movimientos.
func (r *ShipmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM internal_shipments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete shipment %s: movimientos asociados: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete shipment: %w", err)
	}
	return nil
}
