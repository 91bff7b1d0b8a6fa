package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitOfMeasure unidad de medida por defecto de un producto.
// Digits es la precisión de presentación (redondeo), no afecta la persistencia.
type UnitOfMeasure struct {
	ID     string
	Name   string
	Symbol string
	Digits int32
}

// Product representa un producto o SKU que puede solicitarse en un envío interno.
type Product struct {
	ID         string
	CompanyID  string
	SKU        string // código único por empresa
	Name       string
	DefaultUoM UnitOfMeasure
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecName devuelve el nombre de presentación del producto.
func (p *Product) RecName() string {
	if p == nil {
		return ""
	}
	if p.SKU != "" {
		return "[" + p.SKU + "] " + p.Name
	}
	return p.Name
}

// Round redondea una cantidad a los dígitos de la unidad del producto.
func (p *Product) Round(q decimal.Decimal) decimal.Decimal {
	if p == nil {
		return q
	}
	return q.Round(p.DefaultUoM.Digits)
}

// Truncate corta una cantidad a los dígitos de la unidad del producto, sin redondear.
func (p *Product) Truncate(q decimal.Decimal) decimal.Decimal {
	if p == nil {
		return q
	}
	return q.Truncate(p.DefaultUoM.Digits)
}
