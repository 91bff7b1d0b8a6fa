package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación de stock.
type CreateLocationRequest struct {
	Code string `json:"code"`
	Name string `json:"name" validate:"required,min=1,max=200"`
	Type string `json:"type"` // storage | transit | view; vacío = storage
}

// LocationResponse salida de una ubicación de stock.
type LocationResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
