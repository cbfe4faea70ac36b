package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/figures-ledger/internal/application/analytics"
	"github.com/jhoicas/figures-ledger/internal/application/catalog"
	appledger "github.com/jhoicas/figures-ledger/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FigureUC    *catalog.FigureUseCase
	QueryUC     *catalog.QueryUseCase
	Recorder    *appledger.RecordMovementUseCase
	Aggregator  *appledger.AggregatorUseCase
	AnalyticsUC *analytics.SummaryUseCase
	ImageStore  catalog.ImageStore
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de figuras
	figures := api.Group("/figures")
	figureHandler := NewFigureHandler(deps.FigureUC, deps.QueryUC, deps.ImageStore)
	movementHandler := NewMovementHandler(deps.Recorder, deps.Aggregator)
	figures.Post("/", figureHandler.Create)
	figures.Post("/upload", figureHandler.CreateWithImage)
	figures.Get("/", figureHandler.List)
	figures.Get("/:id", figureHandler.GetByID)
	figures.Put("/:id", figureHandler.Update)
	figures.Delete("/:id", figureHandler.Delete)
	figures.Get("/:id/aggregate", movementHandler.Aggregate)
	figures.Get("/:id/sales", movementHandler.Sales)

	// Ledger de movimientos
	movements := api.Group("/movements")
	movements.Post("/", movementHandler.Record)

	// Facetas para los selectores de la UI
	filters := api.Group("/filters")
	filters.Get("/", figureHandler.Filters)
	filters.Get("/:attribute", figureHandler.DistinctValues)

	// Métricas globales
	analyticsGroup := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/summary", analyticsHandler.Summary)
}
