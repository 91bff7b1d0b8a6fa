package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

var _ repository.CatalogueRepository = (*CatalogueRepo)(nil)

// CatalogueRepo implementación del puerto CatalogueRepository sobre PostgreSQL.
type CatalogueRepo struct {
	q Querier
}

// NewCatalogueRepository construye el adaptador de persistencia para catálogos de ubicación.
func NewCatalogueRepository(q Querier) *CatalogueRepo {
	return &CatalogueRepo{q: q}
}

// Create persiste el catálogo y sus entradas en un solo lote.
func (r *CatalogueRepo) Create(ctx context.Context, c *entity.Catalogue) error {
	c.ID = newID(c.ID)
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_location_catalogues (id, company_id, name, location_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING created_at, updated_at`,
		c.ID, c.CompanyID, c.Name, c.LocationID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapError("insert catalogue", err)
	}

	batch := &pgx.Batch{}
	for i := range c.Entries {
		e := &c.Entries[i]
		e.ID = newID(e.ID)
		e.CatalogueID = c.ID
		batch.Queue(`
			INSERT INTO stock_location_catalogue_lines (id, catalogue_id, sequence, product_id, max_quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			e.ID, e.CatalogueID, e.Sequence, e.ProductID, e.MaxQuantity)
	}
	return execBatch(ctx, r.q, "insert catalogue entries", batch)
}

// GetByID obtiene un catálogo con su ubicación y entradas. Devuelve nil si no existe.
func (r *CatalogueRepo) GetByID(ctx context.Context, id string) (*entity.Catalogue, error) {
	list, err := r.list(ctx, `c.id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// GetByIDs obtiene varios catálogos indexados por ID.
func (r *CatalogueRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Catalogue, error) {
	ids = compactIDs(ids)
	out := make(map[string]*entity.Catalogue, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := r.list(ctx, `c.id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		out[c.ID] = c
	}
	return out, nil
}

// ListByLocation lista los catálogos de una ubicación.
func (r *CatalogueRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.Catalogue, error) {
	return r.list(ctx, `c.location_id = $1`, locationID)
}

// list carga catálogos con su ubicación y luego sus entradas ordenadas por secuencia.
func (r *CatalogueRepo) list(ctx context.Context, where string, arg any) ([]*entity.Catalogue, error) {
	query := `
		SELECT c.id, c.company_id, c.name, c.location_id, c.created_at, c.updated_at,
		       l.id, l.company_id, l.code, l.name, l.type, l.created_at, l.updated_at
		FROM stock_location_catalogues c
		JOIN stock_locations l ON l.id = c.location_id
		WHERE ` + where + `
		ORDER BY c.created_at, c.id`
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, mapError("list catalogues", err)
	}
	var list []*entity.Catalogue
	var ids []string
	byID := map[string]*entity.Catalogue{}
	for rows.Next() {
		var c entity.Catalogue
		var l entity.StockLocation
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.LocationID, &c.CreatedAt, &c.UpdatedAt,
			&l.ID, &l.CompanyID, &l.Code, &l.Name, &l.Type, &l.CreatedAt, &l.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan catalogue: %w", err)
		}
		c.Location = &l
		list = append(list, &c)
		byID[c.ID] = &c
		ids = append(ids, c.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list catalogues: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	entries, err := r.q.Query(ctx, `
		SELECT id, catalogue_id, sequence, product_id, max_quantity
		FROM stock_location_catalogue_lines
		WHERE catalogue_id = ANY($1::uuid[])
		ORDER BY catalogue_id, sequence, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list catalogue entries: %w", err)
	}
	defer entries.Close()
	for entries.Next() {
		var e entity.CatalogueEntry
		if err := entries.Scan(&e.ID, &e.CatalogueID, &e.Sequence, &e.ProductID, &e.MaxQuantity); err != nil {
			return nil, fmt.Errorf("scan catalogue entry: %w", err)
		}
		if c, ok := byID[e.CatalogueID]; ok {
			c.Entries = append(c.Entries, e)
		}
	}
	return list, entries.Err()
}
