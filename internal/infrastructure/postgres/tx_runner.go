package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/catalogo-interno/internal/application/catalogue"
	"github.com/jhoicas/catalogo-interno/internal/application/shipment"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

// Ensure TxRunner implements shipment.TxRunner and catalogue.TxRunner.
var (
	_ shipment.TxRunner  = (*TxRunner)(nil)
	_ catalogue.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL serializable.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Users:      NewUserRepository(q),
		Locations:  NewLocationRepository(q),
		Products:   NewProductRepository(q),
		Catalogues: NewCatalogueRepository(q),
		Shipments:  NewShipmentRepository(q),
		Lines:      NewCatalogLineRepository(q),
		Moves:      NewMoveRepository(q),
	}
}
