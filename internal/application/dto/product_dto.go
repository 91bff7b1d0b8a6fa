package dto

import "time"

// UnitOfMeasureRequest unidad por defecto del producto. Digits es la precisión de redondeo.
type UnitOfMeasureRequest struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name" validate:"required"`
	Symbol string `json:"symbol"`
	Digits int32  `json:"digits" validate:"min=0"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU  string               `json:"sku"`
	Name string               `json:"name" validate:"required,min=1,max=200"`
	Unit UnitOfMeasureRequest `json:"unit"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	UnitID     string    `json:"unit_id"`
	Unit       string    `json:"unit"`
	UnitDigits int32     `json:"unit_digits"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
