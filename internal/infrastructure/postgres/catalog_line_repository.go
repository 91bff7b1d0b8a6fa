package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

var _ repository.CatalogLineRepository = (*CatalogLineRepo)(nil)

// CatalogLineRepo implementación del puerto CatalogLineRepository sobre PostgreSQL.
type CatalogLineRepo struct {
	q Querier
}

// NewCatalogLineRepository construye el adaptador de persistencia para líneas de catálogo.
func NewCatalogLineRepository(q Querier) *CatalogLineRepo {
	return &CatalogLineRepo{q: q}
}

const lineColumns = `id, shipment_id, catalogue_id, product_id, sequence, quantity, max_quantity, created_at, updated_at`

func scanLine(row pgx.Row) (*entity.CatalogLine, error) {
	var l entity.CatalogLine
	var catalogueID *string
	err := row.Scan(&l.ID, &l.ShipmentID, &catalogueID, &l.ProductID, &l.Sequence,
		&l.Quantity, &l.MaxQuantity, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.CatalogueID = deref(catalogueID)
	return &l, nil
}

// CreateBatch inserta todas las líneas en un solo pgx.Batch.
func (r *CatalogLineRepo) CreateBatch(ctx context.Context, lines []*entity.CatalogLine) error {
	batch := &pgx.Batch{}
	for _, l := range lines {
		l.ID = newID(l.ID)
		batch.Queue(`
			INSERT INTO internal_shipment_catalog_lines (`+lineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			l.ID, l.ShipmentID, nullable(l.CatalogueID), l.ProductID, l.Sequence,
			l.Quantity, l.MaxQuantity, l.CreatedAt, l.UpdatedAt)
	}
	return execBatch(ctx, r.q, "insert catalog lines", batch)
}

// Update actualiza la cantidad pedida de una línea.
func (r *CatalogLineRepo) Update(ctx context.Context, l *entity.CatalogLine) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE internal_shipment_catalog_lines SET quantity = $2, updated_at = $3
		WHERE id = $1`, l.ID, l.Quantity, l.UpdatedAt)
	if err != nil {
		return mapError("update catalog line", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("catalog line %s: %w", l.ID, domain.ErrNotFound)
	}
	return nil
}

// GetByID obtiene una línea por ID. Devuelve nil si no existe.
func (r *CatalogLineRepo) GetByID(ctx context.Context, id string) (*entity.CatalogLine, error) {
	l, err := scanLine(r.q.QueryRow(ctx,
		`SELECT `+lineColumns+` FROM internal_shipment_catalog_lines WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get catalog line", err)
	}
	return l, nil
}

// ListByShipment lista las líneas del envío en orden de secuencia.
func (r *CatalogLineRepo) ListByShipment(ctx context.Context, shipmentID string) ([]*entity.CatalogLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+lineColumns+` FROM internal_shipment_catalog_lines
		WHERE shipment_id = $1 ORDER BY sequence, created_at, id`, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list catalog lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
