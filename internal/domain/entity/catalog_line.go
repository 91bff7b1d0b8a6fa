package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogLine línea editable de un envío interno, expandida desde una entrada de catálogo.
// MaxQuantity se copia al expandir y no vuelve a leerse del catálogo.
type CatalogLine struct {
	ID          string
	ShipmentID  string
	CatalogueID string
	ProductID   string
	Sequence    int
	Quantity    decimal.Decimal
	MaxQuantity decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExceedsCap indica si la cantidad pedida supera el máximo.
func (l *CatalogLine) ExceedsCap() bool {
	return l.Quantity.GreaterThan(l.MaxQuantity)
}

// Requested indica si la línea pide una cantidad positiva.
func (l *CatalogLine) Requested() bool {
	return l.Quantity.IsPositive()
}
