package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.company_id, p.sku, p.name, u.id, u.name, u.symbol, u.digits, p.created_at, p.updated_at
	FROM products p JOIN product_uoms u ON u.id = p.uom_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Name,
		&p.DefaultUoM.ID, &p.DefaultUoM.Name, &p.DefaultUoM.Symbol, &p.DefaultUoM.Digits,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto y registra su unidad si aún no existe.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	p.ID = newID(p.ID)
	p.DefaultUoM.ID = newID(p.DefaultUoM.ID)
	u := p.DefaultUoM
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_uoms (id, name, symbol, digits) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`, u.ID, u.Name, u.Symbol, u.Digits)
	if err != nil {
		return mapError("insert uom", err)
	}
	query := `
		INSERT INTO products (id, company_id, sku, name, uom_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING created_at, updated_at`
	err = r.q.QueryRow(ctx, query, p.ID, p.CompanyID, p.SKU, p.Name, u.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError("insert product", err)
}

// GetByID obtiene un producto con su unidad. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get product", err)
	}
	return p, nil
}

// GetByIDs obtiene varios productos indexados por ID.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	ids = compactIDs(ids)
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, productSelect+` WHERE p.id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}
