package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogueEntryRequest producto y cantidad máxima de una entrada de catálogo.
type CatalogueEntryRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
}

// CreateCatalogueRequest entrada para crear un catálogo de ubicación.
type CreateCatalogueRequest struct {
	Name       string                  `json:"name" validate:"required,min=1,max=200"`
	LocationID string                  `json:"location_id" validate:"required"`
	Entries    []CatalogueEntryRequest `json:"entries"`
}

// CatalogueEntryResponse salida de una entrada de catálogo.
type CatalogueEntryResponse struct {
	ProductID   string          `json:"product_id"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
}

// CatalogueResponse salida de un catálogo.
type CatalogueResponse struct {
	ID         string                   `json:"id"`
	CompanyID  string                   `json:"company_id"`
	Name       string                   `json:"name"`
	LocationID string                   `json:"location_id"`
	Entries    []CatalogueEntryResponse `json:"entries"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}
