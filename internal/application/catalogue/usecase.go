package catalogue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/catalogo-interno/internal/application/dto"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// UseCase casos de uso administrativos de catálogos de ubicación.
type UseCase struct {
	tx TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// Create crea un catálogo con sus entradas en el orden recibido.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateCatalogueRequest) (*dto.CatalogueResponse, error) {
	if companyID == "" || in.Name == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Catalogue{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       in.Name,
		LocationID: in.LocationID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	productIDs := make([]string, 0, len(in.Entries))
	for i, e := range in.Entries {
		if e.ProductID == "" || e.MaxQuantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		productIDs = append(productIDs, e.ProductID)
		c.Entries = append(c.Entries, entity.CatalogueEntry{
			ID:          uuid.New().String(),
			CatalogueID: c.ID,
			Sequence:    i + 1,
			ProductID:   e.ProductID,
			MaxQuantity: e.MaxQuantity,
		})
	}

	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		loc, err := repos.Locations.GetByID(ctx, in.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
		if loc.CompanyID != companyID {
			return domain.ErrForbidden
		}
		products, err := repos.Products.GetByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		for _, id := range productIDs {
			if _, ok := products[id]; !ok {
				return domain.ErrNotFound
			}
		}
		return repos.Catalogues.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toCatalogueResponse(c), nil
}

// GetByID obtiene un catálogo con sus entradas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.CatalogueResponse, error) {
	var c *entity.Catalogue
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		c, err = repos.Catalogues.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toCatalogueResponse(c), nil
}

// ListByLocation lista los catálogos de una ubicación (los seleccionables para un origen).
func (uc *UseCase) ListByLocation(ctx context.Context, locationID string) ([]dto.CatalogueResponse, error) {
	var list []*entity.Catalogue
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		list, err = repos.Catalogues.ListByLocation(ctx, locationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogueResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCatalogueResponse(c))
	}
	return items, nil
}

func toCatalogueResponse(c *entity.Catalogue) *dto.CatalogueResponse {
	if c == nil {
		return nil
	}
	out := &dto.CatalogueResponse{
		ID:         c.ID,
		CompanyID:  c.CompanyID,
		Name:       c.Name,
		LocationID: c.LocationID,
		Entries:    make([]dto.CatalogueEntryResponse, 0, len(c.Entries)),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	for _, e := range c.Entries {
		out.Entries = append(out.Entries, dto.CatalogueEntryResponse{
			ProductID:   e.ProductID,
			MaxQuantity: e.MaxQuantity,
		})
	}
	return out
}
