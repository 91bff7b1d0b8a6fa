package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-interno/internal/application/dto"
	"github.com/jhoicas/catalogo-interno/internal/application/shipment"
	"github.com/jhoicas/catalogo-interno/internal/domain"
)

// ShipmentHandler maneja las peticiones HTTP de envíos internos con catálogo (protegido).
type ShipmentHandler struct {
	uc *shipment.UseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *shipment.UseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// owned verifica que todos los envíos pertenezcan a la empresa del token.
func (h *ShipmentHandler) owned(ctx context.Context, companyID string, ids ...string) error {
	for _, id := range ids {
		sh, err := h.uc.Get(ctx, id)
		if err != nil {
			return err
		}
		if sh.CompanyID != companyID {
			return domain.ErrForbidden
		}
	}
	return nil
}

// Create godoc
// @Summary      Crear envío interno en borrador
// @Tags         internal-shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "from_location_id, to_location_id (opcional), catalogue_ids"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/internal-shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.EmployeeID == "" {
		in.EmployeeID = GetUserID(c)
	}
	out, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener envío interno con líneas de catálogo y movimientos
// @Tags         internal-shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del envío"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/internal-shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out.CompanyID != companyID {
		return writeError(c, domain.ErrForbidden)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar envío interno (borrador o cancelado)
// @Tags         internal-shipments
// @Security     Bearer
// @Param        id   path  string  true  "ID del envío"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/internal-shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	id := c.Params("id")
	if err := h.owned(c.Context(), companyID, id); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectCatalogues godoc
// @Summary      Reemplazar los catálogos seleccionados del envío
// @Tags         internal-shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del envío"
// @Param        body  body  dto.SelectCataloguesRequest  true  "catalogue_ids en orden"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/internal-shipments/{id}/catalogues [put]
func (h *ShipmentHandler) SelectCatalogues(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.SelectCataloguesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id := c.Params("id")
	if err := h.owned(c.Context(), companyID, id); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SelectCatalogues(c.Context(), id, in.CatalogueIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateLine godoc
// @Summary      Editar la cantidad de una línea de catálogo
// @Tags         internal-shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                         true  "ID del envío"
// @Param        lineId  path  string                         true  "ID de la línea"
// @Param        body    body  dto.UpdateCatalogLineRequest  true  "quantity"
// @Success      200     {object}  dto.ShipmentResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/internal-shipments/{id}/catalog-lines/{lineId} [put]
func (h *ShipmentHandler) UpdateLine(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateCatalogLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id := c.Params("id")
	if err := h.owned(c.Context(), companyID, id); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.UpdateLineQuantity(c.Context(), id, c.Params("lineId"), in.Quantity); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateLines godoc
// @Summary      Expandir los catálogos seleccionados en líneas (por lote)
// @Tags         internal-shipments
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ShipmentIDsRequest  true  "ids de envíos"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/internal-shipments/create-lines [post]
func (h *ShipmentHandler) CreateLines(c *fiber.Ctx) error {
	return h.batch(c, h.uc.CreateLines)
}

// CreateMoves godoc
// @Summary      Reconciliar movimientos con las líneas de catálogo (por lote)
// @Tags         internal-shipments
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ShipmentIDsRequest  true  "ids de envíos"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/internal-shipments/create-moves [post]
func (h *ShipmentHandler) CreateMoves(c *fiber.Ctx) error {
	return h.batch(c, h.uc.CreateMoves)
}

// Draft godoc
// @Summary      Volver envíos a borrador y reconciliar sus movimientos (por lote)
// @Tags         internal-shipments
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ShipmentIDsRequest  true  "ids de envíos"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/internal-shipments/draft [post]
func (h *ShipmentHandler) Draft(c *fiber.Ctx) error {
	return h.batch(c, h.uc.RevertToDraft)
}

func (h *ShipmentHandler) batch(c *fiber.Ctx, run func(ctx context.Context, ids []string) error) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.ShipmentIDsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids es requerido"})
	}
	if err := h.owned(c.Context(), companyID, in.IDs...); err != nil {
		return writeError(c, err)
	}
	if err := run(c.Context(), in.IDs); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
