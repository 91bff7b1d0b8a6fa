package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/catalogo-interno/internal/application/dto"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

// ProductUseCase casos de uso para productos y su unidad por defecto.
type ProductUseCase struct {
	tx TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx TxRunner) *ProductUseCase {
	return &ProductUseCase{tx: tx}
}

// Create crea un nuevo producto. Si Unit.ID viene informado se reutiliza la unidad existente.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if companyID == "" || in.Name == "" || in.Unit.Name == "" || in.Unit.Digits < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	unitID := in.Unit.ID
	if unitID == "" {
		unitID = uuid.New().String()
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       in.SKU,
		Name:      in.Name,
		DefaultUoM: entity.UnitOfMeasure{
			ID:     unitID,
			Name:   in.Unit.Name,
			Symbol: in.Unit.Symbol,
			Digits: in.Unit.Digits,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		return repos.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		product, err = repos.Products.GetByID(ctx, id)
		return err
	})
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		SKU:        p.SKU,
		Name:       p.Name,
		UnitID:     p.DefaultUoM.ID,
		Unit:       p.DefaultUoM.Name,
		UnitDigits: p.DefaultUoM.Digits,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
