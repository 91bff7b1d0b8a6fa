package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un movimiento de stock.
const (
	MoveStateDraft    = "draft"
	MoveStateAssigned = "assigned"
	MoveStateDone     = "done"
	MoveStateCancel   = "cancel"
)

// Tipos de origen de un movimiento. Se guardan explícitamente para poder indexar
// los movimientos generados desde líneas de catálogo.
const (
	OriginNone        = ""
	OriginCatalogLine = "catalog_line"
	OriginMove        = "move"
)

// Move movimiento de una cantidad de producto entre dos ubicaciones.
type Move struct {
	ID             string
	ShipmentID     string
	CompanyID      string
	ProductID      string
	UnitID         string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	State          string
	OriginKind     string
	OriginID       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FromCatalogLine indica si el movimiento fue generado desde una línea de catálogo.
func (m *Move) FromCatalogLine() bool {
	return m.OriginKind == OriginCatalogLine && m.OriginID != ""
}

// Reconcilable indica si el movimiento puede eliminarse al reconciliar.
func (m *Move) Reconcilable() bool {
	return m.State == MoveStateDraft || m.State == MoveStateCancel
}
