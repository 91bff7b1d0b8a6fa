package entity

import "time"

// Tipos de ubicación de stock.
const (
	LocationTypeStorage = "storage"
	LocationTypeTransit = "transit"
	LocationTypeView    = "view"
)

// StockLocation representa una ubicación de stock (bodega, zona o ubicación de tránsito).
type StockLocation struct {
	ID        string
	CompanyID string
	Code      string // ej. STO
	Name      string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecName devuelve el nombre de presentación, con el código si existe.
func (l *StockLocation) RecName() string {
	if l == nil {
		return ""
	}
	if l.Code != "" {
		return "[" + l.Code + "] " + l.Name
	}
	return l.Name
}
