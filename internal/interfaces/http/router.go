package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/logiandes/ms-inventario/internal/application/importer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	GeoUC       *importer.GeoUseCase
	StoreUC     *importer.StoreImportUseCase
	ProductUC   *importer.ProductImportUseCase
	JWTSecret   string
	AllowedRole string // rol autorizado para las cargas masivas; vacío = cualquier rol
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Cargas masivas (protegido, requiere Bearer Token)
	csv := api.Group("/csv", AuthMiddleware(deps.JWTSecret))
	if deps.AllowedRole != "" {
		csv.Use(RequireRole(deps.AllowedRole))
	}
	csvHandler := NewCSVHandler(deps.GeoUC, deps.StoreUC, deps.ProductUC)
	csv.Post("/departamentos", csvHandler.ImportDepartaments)
	csv.Post("/tiendas", csvHandler.ImportStores)
	csv.Post("/productos", csvHandler.ImportProducts)
}
