package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-kardex/internal/application/catalog"
	appinventory "github.com/tu-usuario/pos-kardex/internal/application/inventory"
	"github.com/tu-usuario/pos-kardex/internal/application/sales"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
	"github.com/tu-usuario/pos-kardex/internal/infrastructure/cache"
	"github.com/tu-usuario/pos-kardex/internal/interfaces/ws"
	"github.com/tu-usuario/pos-kardex/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UpsertUC   *catalog.UpsertUseCase
	ProductUC  *catalog.ProductUseCase
	MovementUC *appinventory.ApplyMovementUseCase
	Projector  *appinventory.Projector
	SettleUC   *sales.SettleUseCase
	SaleRepo   repository.SaleRepository
	ListCache  cache.ProductListCache
	Hub        *ws.Hub
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.UpsertUC, deps.ProductUC, deps.ListCache, deps.Logger)
	products.Post("/", productHandler.Upsert)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)

	// Inventory (movimientos y kardex)
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.Projector)
	invGroup.Post("/movements", inventoryHandler.ApplyMovement)
	invGroup.Get("/products/:id/kardex", inventoryHandler.History)
	invGroup.Get("/products/:id/snapshot", inventoryHandler.Snapshot)

	// Sales
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SettleUC, deps.SaleRepo)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// WebSocket de notificaciones para terminales
	wsHandler := NewWSHandler(deps.Hub)
	app.Use("/ws", wsHandler.Upgrade)
	app.Get("/ws", wsHandler.Serve())
}
