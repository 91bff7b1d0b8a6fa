package catalogue_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-interno/internal/application/catalogue"
	"github.com/jhoicas/catalogo-interno/internal/application/dto"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
	"github.com/jhoicas/catalogo-interno/internal/infrastructure/memory"
)

func newUseCase(t *testing.T) *catalogue.UseCase {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Run(ctx, func(repos repository.Repos) error {
		for _, l := range []*entity.StockLocation{
			{ID: "loc-sto", CompanyID: "co-1", Code: "STO", Name: "Storage", Type: entity.LocationTypeStorage},
			{ID: "loc-ext", CompanyID: "co-2", Code: "EXT", Name: "Externa", Type: entity.LocationTypeStorage},
		} {
			if err := repos.Locations.Create(ctx, l); err != nil {
				return err
			}
		}
		unit := entity.UnitOfMeasure{ID: "uom-unit", Name: "Unit", Symbol: "u"}
		return repos.Products.Create(ctx, &entity.Product{ID: "p1", CompanyID: "co-1", Name: "Product1", DefaultUoM: unit})
	}))
	return catalogue.NewUseCase(store)
}

func TestCreate_ConservaOrdenDeEntradas(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, "co-1", dto.CreateCatalogueRequest{
		Name:       "DEMO",
		LocationID: "loc-sto",
		Entries: []dto.CatalogueEntryRequest{
			{ProductID: "p1", MaxQuantity: decimal.NewFromInt(12)},
		},
	})
	require.NoError(t, err)
	require.Len(t, c.Entries, 1)
	assert.True(t, c.Entries[0].MaxQuantity.Equal(decimal.NewFromInt(12)))

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "DEMO", got.Name)

	list, err := uc.ListByLocation(ctx, "loc-sto")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_Errores(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		company string
		in      dto.CreateCatalogueRequest
		want    error
	}{
		{"sin nombre", "co-1", dto.CreateCatalogueRequest{LocationID: "loc-sto"}, domain.ErrInvalidInput},
		{"máximo negativo", "co-1", dto.CreateCatalogueRequest{Name: "X", LocationID: "loc-sto",
			Entries: []dto.CatalogueEntryRequest{{ProductID: "p1", MaxQuantity: decimal.NewFromInt(-1)}}}, domain.ErrInvalidInput},
		{"ubicación inexistente", "co-1", dto.CreateCatalogueRequest{Name: "X", LocationID: "nope"}, domain.ErrNotFound},
		{"ubicación de otra empresa", "co-1", dto.CreateCatalogueRequest{Name: "X", LocationID: "loc-ext"}, domain.ErrForbidden},
		{"producto inexistente", "co-1", dto.CreateCatalogueRequest{Name: "X", LocationID: "loc-sto",
			Entries: []dto.CatalogueEntryRequest{{ProductID: "p9", MaxQuantity: decimal.NewFromInt(1)}}}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.company, tt.in)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestGetByID_NoExiste(t *testing.T) {
	uc := newUseCase(t)
	got, err := uc.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}
