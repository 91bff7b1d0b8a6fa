package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

const locationColumns = `id, company_id, code, name, type, created_at, updated_at`

func scanLocation(row pgx.Row) (*entity.StockLocation, error) {
	var l entity.StockLocation
	if err := row.Scan(&l.ID, &l.CompanyID, &l.Code, &l.Name, &l.Type, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(ctx context.Context, l *entity.StockLocation) error {
	l.ID = newID(l.ID)
	if l.Type == "" {
		l.Type = entity.LocationTypeStorage
	}
	query := `
		INSERT INTO stock_locations (id, company_id, code, name, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, l.ID, l.CompanyID, l.Code, l.Name, l.Type).Scan(&l.CreatedAt, &l.UpdatedAt)
	return mapError("insert location", err)
}

// GetByID obtiene una ubicación por ID. Devuelve nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.StockLocation, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM stock_locations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get location", err)
	}
	return l, nil
}

// GetByIDs obtiene varias ubicaciones indexadas por ID.
func (r *LocationRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.StockLocation, error) {
	ids = compactIDs(ids)
	out := make(map[string]*entity.StockLocation, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM stock_locations WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out[l.ID] = l
	}
	return out, rows.Err()
}
