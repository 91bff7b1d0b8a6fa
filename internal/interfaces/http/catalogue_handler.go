package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-interno/internal/application/catalogue"
	"github.com/jhoicas/catalogo-interno/internal/application/dto"
)

// CatalogueHandler maneja las peticiones HTTP de catálogos de ubicación (protegido).
type CatalogueHandler struct {
	uc *catalogue.UseCase
}

// NewCatalogueHandler construye el handler.
func NewCatalogueHandler(uc *catalogue.UseCase) *CatalogueHandler {
	return &CatalogueHandler{uc: uc}
}

// Create godoc
// @Summary      Crear catálogo de ubicación
// @Tags         catalogues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCatalogueRequest  true  "name, location_id, entries (product_id, max_quantity)"
// @Success      201   {object}  dto.CatalogueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalogues [post]
func (h *CatalogueHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateCatalogueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener catálogo por ID
// @Tags         catalogues
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del catálogo"
// @Success      200  {object}  dto.CatalogueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogues/{id} [get]
func (h *CatalogueHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil || out.CompanyID != GetCompanyID(c) {
		return notFound(c, "catálogo no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar catálogos de una ubicación
// @Tags         catalogues
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.CatalogueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalogues [get]
func (h *CatalogueHandler) List(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id es requerido"})
	}
	list, err := h.uc.ListByLocation(c.Context(), locationID)
	if err != nil {
		return writeError(c, err)
	}
	companyID := GetCompanyID(c)
	items := make([]dto.CatalogueResponse, 0, len(list))
	for _, cat := range list {
		if cat.CompanyID == companyID {
			items = append(items, cat)
		}
	}
	return c.JSON(items)
}
