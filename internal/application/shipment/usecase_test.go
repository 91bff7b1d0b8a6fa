package shipment_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-interno/internal/application/catalogue"
	"github.com/jhoicas/catalogo-interno/internal/application/dto"
	"github.com/jhoicas/catalogo-interno/internal/application/shipment"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
	"github.com/jhoicas/catalogo-interno/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-interno/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: catálogo DEMO en STO con Product1 (12), Product2 (5), Product3 (15)
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID = "co-1"
	locSTO    = "loc-sto"
	locSTO2   = "loc-sto2"
	locTRN    = "loc-transit"
)

type fixture struct {
	store     *memory.Store
	uc        *shipment.UseCase
	catalogUC *catalogue.UseCase
	demoID    string
}

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	err := store.Run(ctx, func(repos repository.Repos) error {
		for _, l := range []*entity.StockLocation{
			{ID: locSTO, CompanyID: companyID, Code: "STO", Name: "Storage", Type: entity.LocationTypeStorage},
			{ID: locSTO2, CompanyID: companyID, Code: "STO2", Name: "Storage 2", Type: entity.LocationTypeStorage},
			{ID: locTRN, CompanyID: companyID, Code: "TRN", Name: "Transit", Type: entity.LocationTypeTransit},
		} {
			if err := repos.Locations.Create(ctx, l); err != nil {
				return err
			}
		}
		unit := entity.UnitOfMeasure{ID: "uom-unit", Name: "Unit", Symbol: "u", Digits: 0}
		for _, p := range []*entity.Product{
			{ID: "p1", CompanyID: companyID, Name: "Product1", DefaultUoM: unit},
			{ID: "p2", CompanyID: companyID, Name: "Product2", DefaultUoM: unit},
			{ID: "p3", CompanyID: companyID, Name: "Product3", DefaultUoM: unit},
		} {
			if err := repos.Products.Create(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	catalogUC := catalogue.NewUseCase(store)
	demo, err := catalogUC.Create(ctx, companyID, dto.CreateCatalogueRequest{
		Name:       "DEMO",
		LocationID: locSTO,
		Entries: []dto.CatalogueEntryRequest{
			{ProductID: "p1", MaxQuantity: qty(12)},
			{ProductID: "p2", MaxQuantity: qty(5)},
			{ProductID: "p3", MaxQuantity: qty(15)},
		},
	})
	require.NoError(t, err)

	uc := shipment.NewUseCase(store, logger.Nop(), shipment.Config{DefaultToLocationID: locSTO2})
	return &fixture{store: store, uc: uc, catalogUC: catalogUC, demoID: demo.ID}
}

// newShipment crea un envío STO → STO2 con el catálogo DEMO y expande sus líneas.
func (f *fixture) newShipment(t *testing.T, in dto.CreateShipmentRequest) *dto.ShipmentResponse {
	t.Helper()
	ctx := context.Background()
	if in.FromLocationID == "" {
		in.FromLocationID = locSTO
	}
	if in.CatalogueIDs == nil {
		in.CatalogueIDs = []string{f.demoID}
	}
	sh, err := f.uc.Create(ctx, companyID, in)
	require.NoError(t, err)
	require.NoError(t, f.uc.CreateLines(ctx, []string{sh.ID}))
	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	return out
}

func (f *fixture) setQty(t *testing.T, sh *dto.ShipmentResponse, idx int, v int64) {
	t.Helper()
	require.NoError(t, f.uc.UpdateLineQuantity(context.Background(), sh.ID, sh.CatalogLines[idx].ID, qty(v)))
}

// setState fuerza el estado del envío (simula el flujo externo de estados).
func (f *fixture) setState(t *testing.T, id, state string) {
	t.Helper()
	err := f.store.Run(context.Background(), func(repos repository.Repos) error {
		return repos.Shipments.UpdateState(context.Background(), id, state)
	})
	require.NoError(t, err)
}

type moveKey struct {
	Product string
	Qty     string
	From    string
	To      string
}

// catalogMoves devuelve los movimientos de catálogo en borrador como conjunto ordenado.
func (f *fixture) catalogMoves(t *testing.T, id string) []moveKey {
	t.Helper()
	sh, err := f.uc.Get(context.Background(), id)
	require.NoError(t, err)
	var keys []moveKey
	for _, m := range sh.Moves {
		if m.OriginKind == entity.OriginCatalogLine && m.State == entity.MoveStateDraft {
			keys = append(keys, moveKey{m.ProductID, m.Quantity.String(), m.FromLocationID, m.ToLocationID})
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Product < keys[j].Product })
	return keys
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario DEMO
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioDemo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sh := f.newShipment(t, dto.CreateShipmentRequest{ToLocationID: locSTO2})
	require.Len(t, sh.CatalogLines, 3)
	caps := []int64{12, 5, 15}
	for i, l := range sh.CatalogLines {
		assert.True(t, l.Quantity.IsZero())
		assert.True(t, l.MaxQuantity.Equal(qty(caps[i])))
		assert.Equal(t, "Unit", l.Unit)
	}

	f.setQty(t, sh, 0, 5)
	f.setQty(t, sh, 1, 3)
	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))

	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, out.Moves, 2, "solo las líneas con cantidad generan movimientos")
	assert.Equal(t, []moveKey{
		{"p1", "5", locSTO, locSTO2},
		{"p2", "3", locSTO, locSTO2},
	}, f.catalogMoves(t, sh.ID))

	assert.True(t, out.CatalogLines[0].ServedQuantity.Equal(qty(5)))
	assert.True(t, out.CatalogLines[2].ServedQuantity.IsZero())
	assert.Equal(t, entity.MoveStateDraft, out.CatalogLines[0].MoveState)
	assert.Equal(t, "", out.CatalogLines[2].MoveState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Expansión
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLines_DosCatalogos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	second, err := f.catalogUC.Create(ctx, companyID, dto.CreateCatalogueRequest{
		Name: "EXTRA", LocationID: locSTO,
		Entries: []dto.CatalogueEntryRequest{{ProductID: "p3", MaxQuantity: qty(2)}},
	})
	require.NoError(t, err)

	sh := f.newShipment(t, dto.CreateShipmentRequest{CatalogueIDs: []string{f.demoID, second.ID}})
	require.Len(t, sh.CatalogLines, 4)
	assert.Equal(t, second.ID, sh.CatalogLines[3].CatalogueID)
	assert.True(t, sh.CatalogLines[3].MaxQuantity.Equal(qty(2)))
}

func TestCreateLines_SegundaLlamadaNoDuplica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})

	require.NoError(t, f.uc.CreateLines(ctx, []string{sh.ID}))
	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	assert.Len(t, out.CatalogLines, 3)
}

func TestCreateLines_IDRepetidoEnLote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh, err := f.uc.Create(ctx, companyID, dto.CreateShipmentRequest{
		FromLocationID: locSTO,
		CatalogueIDs:   []string{f.demoID},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.CreateLines(ctx, []string{sh.ID, sh.ID}))
	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	assert.Len(t, out.CatalogLines, 3, "un envío repetido se expande una sola vez")
}

func TestCreateLines_EnvioInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.uc.CreateLines(context.Background(), []string{"nope"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreate_DestinoPorDefecto(t *testing.T) {
	f := newFixture(t)
	sh, err := f.uc.Create(context.Background(), companyID, dto.CreateShipmentRequest{FromLocationID: locSTO})
	require.NoError(t, err)
	assert.Equal(t, locSTO2, sh.ToLocationID)
	assert.Equal(t, entity.ShipmentStateDraft, sh.State)
}

func TestCreate_CatalogoDeOtraUbicacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), companyID, dto.CreateShipmentRequest{
		FromLocationID: locSTO2,
		ToLocationID:   locSTO,
		CatalogueIDs:   []string{f.demoID},
	})
	assert.True(t, errors.Is(err, domain.ErrCatalogueLocationMismatch))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de cantidad máxima
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateLineQuantity_Maximo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	lineID := sh.CatalogLines[0].ID

	err := f.uc.UpdateLineQuantity(ctx, sh.ID, lineID, qty(13))
	require.Error(t, err)
	var capErr *domain.QuantityExceedsCapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, "Product1", capErr.Product)
	assert.True(t, capErr.Cap.Equal(qty(12)))

	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	assert.True(t, out.CatalogLines[0].Quantity.IsZero(), "la escritura rechazada no se persiste")

	require.NoError(t, f.uc.UpdateLineQuantity(ctx, sh.ID, lineID, qty(12)))
}

func TestUpdateLineQuantity_Negativa(t *testing.T) {
	f := newFixture(t)
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	err := f.uc.UpdateLineQuantity(context.Background(), sh.ID, sh.CatalogLines[0].ID, qty(-1))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdateLineQuantity_EnvioNoBorrador(t *testing.T) {
	f := newFixture(t)
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setState(t, sh.ID, entity.ShipmentStateWaiting)

	err := f.uc.UpdateLineQuantity(context.Background(), sh.ID, sh.CatalogLines[0].ID, qty(1))
	assert.True(t, errors.Is(err, domain.ErrShipmentNotDraft))
}

type rejectAll struct{}

func (rejectAll) ValidateLines(context.Context, repository.Repos, []*entity.CatalogLine) error {
	return domain.ErrConflict
}

func TestCreateLines_ValidadorAdicional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.uc.AddLineValidator(rejectAll{})
	sh, err := f.uc.Create(ctx, companyID, dto.CreateShipmentRequest{FromLocationID: locSTO, CatalogueIDs: []string{f.demoID}})
	require.NoError(t, err)

	err = f.uc.CreateLines(ctx, []string{sh.ID})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	assert.Empty(t, out.CatalogLines, "el lote completo se descarta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMoves_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, sh, 0, 5)
	f.setQty(t, sh, 1, 3)

	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))
	first := f.catalogMoves(t, sh.ID)
	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))
	assert.Equal(t, first, f.catalogMoves(t, sh.ID))

	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	assert.Len(t, out.Moves, 2)
}

func TestCreateMoves_IDRepetidoEnLote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, sh, 0, 5)

	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID, sh.ID}))
	assert.Equal(t, []moveKey{{"p1", "5", locSTO, locSTO2}}, f.catalogMoves(t, sh.ID))
}

func TestCreateMoves_SigueLasLineas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, sh, 0, 5)
	f.setQty(t, sh, 1, 3)
	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))

	f.setQty(t, sh, 0, 0)
	f.setQty(t, sh, 2, 7)
	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))

	assert.Equal(t, []moveKey{
		{"p2", "3", locSTO, locSTO2},
		{"p3", "7", locSTO, locSTO2},
	}, f.catalogMoves(t, sh.ID))
}

func TestCreateMoves_NoTocaMovimientosAvanzados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, sh, 0, 5)
	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))

	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	assignedID := out.Moves[0].ID
	require.NoError(t, f.store.Run(ctx, func(repos repository.Repos) error {
		return repos.Moves.SetState(ctx, []string{assignedID}, entity.MoveStateAssigned)
	}))

	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))
	out, err = f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, out.Moves, 2)
	assert.Equal(t, assignedID, out.Moves[0].ID)
	assert.Equal(t, entity.MoveStateAssigned, out.Moves[0].State)
}

func TestCreateMoves_OmiteEnviosNoBorrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, sh, 0, 5)
	f.setState(t, sh.ID, entity.ShipmentStateWaiting)

	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))
	assert.Empty(t, f.catalogMoves(t, sh.ID))
}

func TestCreateMoves_MismaUbicacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, ok, 0, 5)
	require.NoError(t, f.uc.CreateMoves(ctx, []string{ok.ID}))
	f.setQty(t, ok, 1, 2)
	before := f.catalogMoves(t, ok.ID)

	bad := f.newShipment(t, dto.CreateShipmentRequest{ToLocationID: locSTO})
	f.setQty(t, bad, 0, 1)

	err := f.uc.CreateMoves(ctx, []string{ok.ID, bad.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSameLocation))
	var slErr *domain.SameLocationError
	require.True(t, errors.As(err, &slErr))
	assert.Equal(t, []string{"[STO] Storage"}, slErr.Locations)

	assert.Equal(t, before, f.catalogMoves(t, ok.ID), "ningún envío del lote se modifica")
	assert.Empty(t, f.catalogMoves(t, bad.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Vuelta a borrador
// ──────────────────────────────────────────────────────────────────────────────

func TestRevertToDraft_Reconcilia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, sh, 0, 5)
	f.setQty(t, sh, 2, 4)
	f.setState(t, sh.ID, entity.ShipmentStateWaiting)

	require.NoError(t, f.uc.RevertToDraft(ctx, []string{sh.ID}))

	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStateDraft, out.State)
	assert.Equal(t, []moveKey{
		{"p1", "5", locSTO, locSTO2},
		{"p3", "4", locSTO, locSTO2},
	}, f.catalogMoves(t, sh.ID))
}

func TestRevertToDraft_MovimientosCanceladosSeRegeneran(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, sh, 1, 3)
	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))

	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	oldID := out.Moves[0].ID
	require.NoError(t, f.store.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Moves.SetState(ctx, []string{oldID}, entity.MoveStateCancel); err != nil {
			return err
		}
		return repos.Shipments.UpdateState(ctx, sh.ID, entity.ShipmentStateCancel)
	}))

	require.NoError(t, f.uc.RevertToDraft(ctx, []string{sh.ID}))
	out, err = f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, out.Moves, 1)
	assert.NotEqual(t, oldID, out.Moves[0].ID, "el movimiento se recrea")
	assert.Equal(t, entity.MoveStateDraft, out.Moves[0].State)
	assert.True(t, out.Moves[0].Quantity.Equal(qty(3)))
}

func TestRevertToDraft_IDRepetidoEnLote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := &countingListener{}
	f.uc.AddDraftListener(l)
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, sh, 1, 3)
	f.setState(t, sh.ID, entity.ShipmentStateWaiting)

	require.NoError(t, f.uc.RevertToDraft(ctx, []string{sh.ID, sh.ID}))
	assert.Equal(t, 1, l.calls)
	assert.Equal(t, []moveKey{{"p2", "3", locSTO, locSTO2}}, f.catalogMoves(t, sh.ID))
}

func TestRevertToDraft_EstadoNoPermitido(t *testing.T) {
	f := newFixture(t)
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setState(t, sh.ID, entity.ShipmentStateDone)

	err := f.uc.RevertToDraft(context.Background(), []string{sh.ID})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestRevertToDraft_EliminaTramosDeTransito(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{TransitLocationID: locTRN})
	f.setQty(t, sh, 0, 5)
	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))

	out, err := f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	parent := out.Moves[0]
	require.NoError(t, f.store.Run(ctx, func(repos repository.Repos) error {
		leg := &entity.Move{
			ShipmentID: sh.ID, CompanyID: companyID, ProductID: "p1",
			FromLocationID: locSTO, ToLocationID: locTRN, Quantity: qty(5),
			State: entity.MoveStateAssigned, OriginKind: entity.OriginMove, OriginID: parent.ID,
		}
		if err := repos.Moves.CreateBatch(ctx, []*entity.Move{leg}); err != nil {
			return err
		}
		return repos.Shipments.UpdateState(ctx, sh.ID, entity.ShipmentStateWaiting)
	}))

	require.NoError(t, f.uc.RevertToDraft(ctx, []string{sh.ID}))
	out, err = f.uc.Get(ctx, sh.ID)
	require.NoError(t, err)
	for _, m := range out.Moves {
		assert.NotEqual(t, locTRN, m.ToLocationID, "el tramo hacia tránsito se elimina")
	}
	assert.Equal(t, []moveKey{{"p1", "5", locSTO, locSTO2}}, f.catalogMoves(t, sh.ID))
}

type countingListener struct{ calls int }

func (c *countingListener) AfterDraft(_ context.Context, _ repository.Repos, shipments []*entity.Shipment) error {
	c.calls += len(shipments)
	return nil
}

func TestRevertToDraft_NotificaListeners(t *testing.T) {
	f := newFixture(t)
	l := &countingListener{}
	f.uc.AddDraftListener(l)
	sh := f.newShipment(t, dto.CreateShipmentRequest{})

	require.NoError(t, f.uc.RevertToDraft(context.Background(), []string{sh.ID}))
	assert.Equal(t, 1, l.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_CascadaLineas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.newShipment(t, dto.CreateShipmentRequest{})
	f.setQty(t, sh, 0, 1)
	require.NoError(t, f.uc.CreateMoves(ctx, []string{sh.ID}))

	require.NoError(t, f.uc.Delete(ctx, sh.ID))
	_, err := f.uc.Get(ctx, sh.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, f.store.Run(ctx, func(repos repository.Repos) error {
		lines, err := repos.Lines.ListByShipment(ctx, sh.ID)
		assert.Empty(t, lines)
		return err
	}))
}
