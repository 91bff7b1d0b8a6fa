package shipment

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no se confirma ningún cambio.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// LineValidator se invoca antes de persistir cualquier alta o edición de líneas de catálogo.
// Un error aborta la escritura.
type LineValidator interface {
	ValidateLines(ctx context.Context, repos repository.Repos, lines []*entity.CatalogLine) error
}

// DraftListener se invoca después de que los envíos vuelven a borrador, dentro de la misma tx.
type DraftListener interface {
	AfterDraft(ctx context.Context, repos repository.Repos, shipments []*entity.Shipment) error
}
