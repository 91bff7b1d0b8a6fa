package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentIDsRequest body para las acciones por lote (create-lines, create-moves, draft).
type ShipmentIDsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// CreateShipmentRequest entrada para crear un envío interno en borrador.
// Si ToLocationID está vacío se usa la ubicación destino configurada por defecto.
type CreateShipmentRequest struct {
	Reference         string   `json:"reference"`
	FromLocationID    string   `json:"from_location_id" validate:"required"`
	ToLocationID      string   `json:"to_location_id,omitempty"`
	TransitLocationID string   `json:"transit_location_id,omitempty"`
	EmployeeID        string   `json:"employee_id,omitempty"`
	CatalogueIDs      []string `json:"catalogue_ids"`
}

// SelectCataloguesRequest body para reemplazar los catálogos seleccionados de un envío.
type SelectCataloguesRequest struct {
	CatalogueIDs []string `json:"catalogue_ids"`
}

// UpdateCatalogLineRequest body para editar la cantidad de una línea de catálogo.
type UpdateCatalogLineRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CatalogLineResponse salida de una línea de catálogo con sus campos derivados.
type CatalogLineResponse struct {
	ID             string          `json:"id"`
	CatalogueID    string          `json:"catalogue_id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	MaxQuantity    decimal.Decimal `json:"max_quantity"`
	ServedQuantity decimal.Decimal `json:"served_quantity"`
	Unit           string          `json:"unit"`
	UnitDigits     int32           `json:"unit_digits"`
	MoveState      string          `json:"move_state,omitempty"`
}

// MoveResponse salida de un movimiento del envío.
type MoveResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	State          string          `json:"state"`
	OriginKind     string          `json:"origin_kind,omitempty"`
	OriginID       string          `json:"origin_id,omitempty"`
}

// ShipmentResponse salida de un envío interno con sus líneas y movimientos.
type ShipmentResponse struct {
	ID                string                `json:"id"`
	CompanyID         string                `json:"company_id"`
	Reference         string                `json:"reference"`
	State             string                `json:"state"`
	FromLocationID    string                `json:"from_location_id"`
	ToLocationID      string                `json:"to_location_id"`
	TransitLocationID string                `json:"transit_location_id,omitempty"`
	EmployeeID        string                `json:"employee_id,omitempty"`
	CatalogueIDs      []string              `json:"catalogue_ids"`
	CatalogLines      []CatalogLineResponse `json:"catalog_lines"`
	Moves             []MoveResponse        `json:"moves"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}
