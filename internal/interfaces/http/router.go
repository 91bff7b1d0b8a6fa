package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-interno/internal/application/auth"
	"github.com/jhoicas/catalogo-interno/internal/application/catalogue"
	"github.com/jhoicas/catalogo-interno/internal/application/shipment"
	"github.com/jhoicas/catalogo-interno/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ShipmentUC  *shipment.UseCase
	CatalogueUC *catalogue.UseCase
	LocationUC  *usecase.LocationUseCase
	ProductUC   *usecase.ProductUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(RoleAdmin, RoleBodeguero)

	// Datos maestros (admin/bodeguero)
	stockHandler := NewStockHandler(deps.LocationUC, deps.ProductUC)
	protected.Post("/locations", managers, stockHandler.CreateLocation)
	protected.Get("/locations/:id", stockHandler.GetLocation)
	protected.Post("/products", managers, stockHandler.CreateProduct)
	protected.Get("/products/:id", stockHandler.GetProduct)

	// Catálogos de ubicación
	catalogues := protected.Group("/catalogues")
	catalogueHandler := NewCatalogueHandler(deps.CatalogueUC)
	catalogues.Post("/", managers, catalogueHandler.Create)
	catalogues.Get("/", catalogueHandler.List)
	catalogues.Get("/:id", catalogueHandler.GetByID)

	// Envíos internos. Las acciones por lote van antes de /:id.
	shipments := protected.Group("/internal-shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Post("/create-lines", shipmentHandler.CreateLines)
	shipments.Post("/create-moves", shipmentHandler.CreateMoves)
	shipments.Post("/draft", shipmentHandler.Draft)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Delete("/:id", shipmentHandler.Delete)
	shipments.Put("/:id/catalogues", shipmentHandler.SelectCatalogues)
	shipments.Put("/:id/catalog-lines/:lineId", shipmentHandler.UpdateLine)
}
