package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio.
var (
	ErrNotFound                  = errors.New("recurso no encontrado")
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrUnauthorized              = errors.New("no autorizado")
	ErrForbidden                 = errors.New("acceso denegado")
	ErrConflict                  = errors.New("conflicto con el estado actual")
	ErrShipmentNotDraft          = errors.New("el envío no está en borrador")
	ErrInvalidTransition         = errors.New("transición de estado no permitida")
	ErrCatalogueLocationMismatch = errors.New("el catálogo no pertenece a la ubicación origen del envío")
	ErrQuantityExceedsCapacity   = errors.New("la cantidad supera el máximo del catálogo")
	ErrSameLocation              = errors.New("ubicación origen y destino iguales")
)

// QuantityExceedsCapacityError indica que una línea de catálogo pide más que su máximo.
type QuantityExceedsCapacityError struct {
	Product string
	Cap     decimal.Decimal
}

func (e *QuantityExceedsCapacityError) Error() string {
	return fmt.Sprintf("la cantidad del producto %q no puede superar %s", e.Product, e.Cap.String())
}

// Is permite errors.Is(err, ErrQuantityExceedsCapacity).
func (e *QuantityExceedsCapacityError) Is(target error) bool {
	return target == ErrQuantityExceedsCapacity
}

// SameLocationError indica movimientos con la misma ubicación de origen y destino.
// Locations lleva los nombres de las ubicaciones en conflicto.
type SameLocationError struct {
	Locations []string
}

func (e *SameLocationError) Error() string {
	return fmt.Sprintf("ubicación origen y destino iguales: %s", strings.Join(e.Locations, ","))
}

// Is permite errors.Is(err, ErrSameLocation).
func (e *SameLocationError) Is(target error) bool {
	return target == ErrSameLocation
}
