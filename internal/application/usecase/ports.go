package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
