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

// LocationUseCase casos de uso para ubicaciones de stock.
type LocationUseCase struct {
	tx TxRunner
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(tx TxRunner) *LocationUseCase {
	return &LocationUseCase{tx: tx}
}

// Create crea una nueva ubicación.
func (uc *LocationUseCase) Create(ctx context.Context, companyID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	switch in.Type {
	case "":
		in.Type = entity.LocationTypeStorage
	case entity.LocationTypeStorage, entity.LocationTypeTransit, entity.LocationTypeView:
	default:
		return nil, domain.ErrInvalidInput
	}
	if companyID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	location := &entity.StockLocation{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      in.Code,
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		return repos.Locations.Create(ctx, location)
	})
	if err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID. Devuelve nil si no existe.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	var location *entity.StockLocation
	err := uc.tx.Run(ctx, func(repos repository.Repos) error {
		var err error
		location, err = repos.Locations.GetByID(ctx, id)
		return err
	})
	if err != nil || location == nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

func toLocationResponse(l *entity.StockLocation) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		CompanyID: l.CompanyID,
		Code:      l.Code,
		Name:      l.Name,
		Type:      l.Type,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
