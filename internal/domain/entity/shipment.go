package entity

import "time"

// Estados de un envío interno.
const (
	ShipmentStateDraft    = "draft"
	ShipmentStateWaiting  = "waiting"
	ShipmentStateAssigned = "assigned"
	ShipmentStateDone     = "done"
	ShipmentStateCancel   = "cancel"
)

// Shipment representa un envío interno entre dos ubicaciones de la misma empresa.
// CatalogLines y Moves se cargan bajo demanda por los repositorios.
type Shipment struct {
	ID                string
	CompanyID         string
	Reference         string
	State             string
	FromLocationID    string
	ToLocationID      string
	TransitLocationID string // vacío si el envío no usa tránsito
	EmployeeID        string // empleado que hizo la solicitud
	CatalogueIDs      []string
	CatalogLines      []*CatalogLine
	Moves             []*Move
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsDraft indica si el envío está en borrador.
func (s *Shipment) IsDraft() bool {
	return s.State == ShipmentStateDraft
}

// CataloguesRestricted indica si los catálogos seleccionados deben pertenecer a FromLocationID.
func (s *Shipment) CataloguesRestricted() bool {
	return s.State == ShipmentStateDraft || s.State == ShipmentStateWaiting
}
