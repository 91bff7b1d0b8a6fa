package repository

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Users      UserRepository
	Locations  LocationRepository
	Products   ProductRepository
	Catalogues CatalogueRepository
	Shipments  ShipmentRepository
	Lines      CatalogLineRepository
	Moves      MoveRepository
}
