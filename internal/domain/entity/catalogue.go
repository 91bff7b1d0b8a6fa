package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catalogue vincula una ubicación de stock con una lista ordenada de productos y su cantidad máxima.
// Es de solo lectura para el flujo de envíos internos.
type Catalogue struct {
	ID         string
	CompanyID  string
	Name       string
	LocationID string
	Location   *StockLocation
	Entries    []CatalogueEntry // en orden (Sequence)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CatalogueEntry producto y cantidad máxima dentro de un catálogo.
type CatalogueEntry struct {
	ID          string
	CatalogueID string
	Sequence    int
	ProductID   string
	MaxQuantity decimal.Decimal
}
