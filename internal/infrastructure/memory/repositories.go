package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/domain/repository"
)

var (
	_ repository.UserRepository        = (*userRepo)(nil)
	_ repository.LocationRepository    = (*locationRepo)(nil)
	_ repository.ProductRepository     = (*productRepo)(nil)
	_ repository.CatalogueRepository   = (*catalogueRepo)(nil)
	_ repository.ShipmentRepository    = (*shipmentRepo)(nil)
	_ repository.CatalogLineRepository = (*lineRepo)(nil)
	_ repository.MoveRepository        = (*moveRepo)(nil)
)

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type userRepo struct{ s *state }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = newID(u.ID)
	for _, existing := range r.s.users {
		if existing.ID == u.ID || strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("create user %s: %w", u.Email, domain.ErrConflict)
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// ── Ubicaciones ──────────────────────────────────────────────────────────────

type locationRepo struct{ s *state }

func (r *locationRepo) Create(_ context.Context, l *entity.StockLocation) error {
	l.ID = newID(l.ID)
	if _, ok := r.s.locations[l.ID]; ok {
		return fmt.Errorf("create location %s: %w", l.ID, domain.ErrConflict)
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.StockLocation, error) {
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *locationRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.StockLocation, error) {
	out := make(map[string]*entity.StockLocation, len(ids))
	for _, id := range ids {
		if l, ok := r.s.locations[id]; ok {
			out[id] = &l
		}
	}
	return out, nil
}

// ── Productos ────────────────────────────────────────────────────────────────

type productRepo struct{ s *state }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	p.ID = newID(p.ID)
	if _, ok := r.s.products[p.ID]; ok {
		return fmt.Errorf("create product %s: %w", p.ID, domain.ErrConflict)
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out[id] = &p
		}
	}
	return out, nil
}

// ── Catálogos ────────────────────────────────────────────────────────────────

type catalogueRepo struct{ s *state }

func (r *catalogueRepo) Create(_ context.Context, c *entity.Catalogue) error {
	c.ID = newID(c.ID)
	if _, ok := r.s.locations[c.LocationID]; !ok {
		return fmt.Errorf("create catalogue: location %s: %w", c.LocationID, domain.ErrNotFound)
	}
	stored := *c
	stored.Location = nil
	stored.Entries = make([]entity.CatalogueEntry, len(c.Entries))
	for i, e := range c.Entries {
		e.ID = newID(e.ID)
		e.CatalogueID = c.ID
		stored.Entries[i] = e
	}
	sort.SliceStable(stored.Entries, func(i, j int) bool {
		return stored.Entries[i].Sequence < stored.Entries[j].Sequence
	})
	r.s.catalogues[c.ID] = stored
	r.s.catalogueOrder = append(r.s.catalogueOrder, c.ID)
	return nil
}

func (r *catalogueRepo) load(id string) (*entity.Catalogue, bool) {
	c, ok := r.s.catalogues[id]
	if !ok {
		return nil, false
	}
	c.Entries = append([]entity.CatalogueEntry(nil), c.Entries...)
	if l, ok := r.s.locations[c.LocationID]; ok {
		c.Location = &l
	}
	return &c, true
}

func (r *catalogueRepo) GetByID(_ context.Context, id string) (*entity.Catalogue, error) {
	c, ok := r.load(id)
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *catalogueRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Catalogue, error) {
	out := make(map[string]*entity.Catalogue, len(ids))
	for _, id := range ids {
		if c, ok := r.load(id); ok {
			out[id] = c
		}
	}
	return out, nil
}

func (r *catalogueRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.Catalogue, error) {
	var list []*entity.Catalogue
	for _, id := range r.s.catalogueOrder {
		c, ok := r.load(id)
		if ok && c.LocationID == locationID {
			list = append(list, c)
		}
	}
	return list, nil
}

// ── Envíos ───────────────────────────────────────────────────────────────────

type shipmentRepo struct{ s *state }

func (r *shipmentRepo) Create(_ context.Context, sh *entity.Shipment) error {
	sh.ID = newID(sh.ID)
	if _, ok := r.s.shipments[sh.ID]; ok {
		return fmt.Errorf("create shipment %s: %w", sh.ID, domain.ErrConflict)
	}
	stored := *sh
	stored.CatalogueIDs = append([]string(nil), sh.CatalogueIDs...)
	stored.CatalogLines = nil
	stored.Moves = nil
	r.s.shipments[sh.ID] = stored
	return nil
}

func (r *shipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	sh, ok := r.s.shipments[id]
	if !ok {
		return nil, nil
	}
	sh.CatalogueIDs = append([]string(nil), sh.CatalogueIDs...)
	return &sh, nil
}

func (r *shipmentRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Shipment, error) {
	list := make([]*entity.Shipment, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		sh, _ := r.GetByID(ctx, id)
		if sh == nil {
			return nil, fmt.Errorf("shipment %s: %w", id, domain.ErrNotFound)
		}
		list = append(list, sh)
	}
	return list, nil
}

func (r *shipmentRepo) UpdateState(_ context.Context, id, state string) error {
	sh, ok := r.s.shipments[id]
	if !ok {
		return fmt.Errorf("shipment %s: %w", id, domain.ErrNotFound)
	}
	sh.State = state
	r.s.shipments[id] = sh
	return nil
}

func (r *shipmentRepo) SetCatalogues(_ context.Context, id string, catalogueIDs []string) error {
	sh, ok := r.s.shipments[id]
	if !ok {
		return fmt.Errorf("shipment %s: %w", id, domain.ErrNotFound)
	}
	sh.CatalogueIDs = append([]string(nil), catalogueIDs...)
	r.s.shipments[id] = sh
	return nil
}

// Delete elimina el envío y sus líneas de catálogo (cascada explícita).
func (r *shipmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.shipments[id]; !ok {
		return nil
	}
	for _, m := range r.s.moves {
		if m.ShipmentID == id {
			return fmt.Errorf("delete shipment %s: movimientos asociados: %w", id, domain.ErrConflict)
		}
	}
	drop := map[string]struct{}{}
	for lid, l := range r.s.lines {
		if l.ShipmentID == id {
			drop[lid] = struct{}{}
			delete(r.s.lines, lid)
		}
	}
	r.s.lineOrder = removeIDs(r.s.lineOrder, drop)
	delete(r.s.shipments, id)
	return nil
}

// ── Líneas de catálogo ───────────────────────────────────────────────────────

type lineRepo struct{ s *state }

func (r *lineRepo) CreateBatch(_ context.Context, lines []*entity.CatalogLine) error {
	for _, l := range lines {
		if _, ok := r.s.shipments[l.ShipmentID]; !ok {
			return fmt.Errorf("create catalog line: shipment %s: %w", l.ShipmentID, domain.ErrNotFound)
		}
		if l.Quantity.IsNegative() {
			return fmt.Errorf("create catalog line: %w", domain.ErrInvalidInput)
		}
		l.ID = newID(l.ID)
		r.s.lines[l.ID] = *l
		r.s.lineOrder = append(r.s.lineOrder, l.ID)
	}
	return nil
}

func (r *lineRepo) Update(_ context.Context, l *entity.CatalogLine) error {
	cur, ok := r.s.lines[l.ID]
	if !ok {
		return fmt.Errorf("catalog line %s: %w", l.ID, domain.ErrNotFound)
	}
	if l.Quantity.IsNegative() {
		return fmt.Errorf("update catalog line: %w", domain.ErrInvalidInput)
	}
	cur.Quantity = l.Quantity
	cur.UpdatedAt = l.UpdatedAt
	r.s.lines[l.ID] = cur
	return nil
}

func (r *lineRepo) GetByID(_ context.Context, id string) (*entity.CatalogLine, error) {
	l, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *lineRepo) ListByShipment(_ context.Context, shipmentID string) ([]*entity.CatalogLine, error) {
	var list []*entity.CatalogLine
	for _, id := range r.s.lineOrder {
		l := r.s.lines[id]
		if l.ShipmentID == shipmentID {
			list = append(list, &l)
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Sequence < list[j].Sequence })
	return list, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type moveRepo struct{ s *state }

func (r *moveRepo) CreateBatch(_ context.Context, moves []*entity.Move) error {
	for _, m := range moves {
		if _, ok := r.s.shipments[m.ShipmentID]; !ok {
			return fmt.Errorf("create move: shipment %s: %w", m.ShipmentID, domain.ErrNotFound)
		}
		m.ID = newID(m.ID)
		r.s.moves[m.ID] = *m
		r.s.moveOrder = append(r.s.moveOrder, m.ID)
	}
	return nil
}

func (r *moveRepo) list(match func(m *entity.Move) bool) []*entity.Move {
	var list []*entity.Move
	for _, id := range r.s.moveOrder {
		m := r.s.moves[id]
		if match(&m) {
			list = append(list, &m)
		}
	}
	return list
}

func (r *moveRepo) ListByShipment(_ context.Context, shipmentID string) ([]*entity.Move, error) {
	return r.list(func(m *entity.Move) bool { return m.ShipmentID == shipmentID }), nil
}

func (r *moveRepo) ListByOrigin(_ context.Context, shipmentID, originKind string) ([]*entity.Move, error) {
	return r.list(func(m *entity.Move) bool {
		return m.ShipmentID == shipmentID && m.OriginKind == originKind
	}), nil
}

func (r *moveRepo) ListTransitLegs(_ context.Context, shipmentID, transitLocationID string) ([]*entity.Move, error) {
	return r.list(func(m *entity.Move) bool {
		if m.ShipmentID != shipmentID || m.ToLocationID != transitLocationID || m.OriginKind != entity.OriginMove {
			return false
		}
		parent, ok := r.s.moves[m.OriginID]
		return ok && parent.FromCatalogLine()
	}), nil
}

func (r *moveRepo) SetState(_ context.Context, ids []string, state string) error {
	for _, id := range ids {
		m, ok := r.s.moves[id]
		if !ok {
			return fmt.Errorf("move %s: %w", id, domain.ErrNotFound)
		}
		m.State = state
		r.s.moves[id] = m
	}
	return nil
}

func (r *moveRepo) Delete(_ context.Context, ids []string) error {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m, ok := r.s.moves[id]
		if !ok {
			continue
		}
		if m.State != entity.MoveStateDraft && m.State != entity.MoveStateCancel {
			return fmt.Errorf("delete move %s en estado %s: %w", id, m.State, domain.ErrConflict)
		}
		drop[id] = struct{}{}
		delete(r.s.moves, id)
	}
	r.s.moveOrder = removeIDs(r.s.moveOrder, drop)
	return nil
}
