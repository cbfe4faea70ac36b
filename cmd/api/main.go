package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/figures-ledger/internal/application/analytics"
	"github.com/jhoicas/figures-ledger/internal/application/catalog"
	appledger "github.com/jhoicas/figures-ledger/internal/application/ledger"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
	"github.com/jhoicas/figures-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/figures-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/figures-ledger/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/figures-ledger/internal/interfaces/http"
	"github.com/jhoicas/figures-ledger/pkg/config"
	"github.com/jhoicas/figures-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner      appledger.TxRunner
		figRepo       repository.FigureRepository
		movRepo       repository.MovementRepository
		analyticsRepo repository.AnalyticsRepository
	)
	switch cfg.Storage.Driver {
	case "memory":
		// Todo en proceso: útil para demos y pruebas manuales sin BD
		store := memory.NewStore()
		txRunner = memory.NewTxRunner(store)
		figRepo = memory.NewFigureRepository(store)
		movRepo = memory.NewMovementRepository(store)
		analyticsRepo = memory.NewAnalyticsRepository(store)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("inicializar esquema")
		}
		txRunner = postgres.NewTxRunner(pool)
		figRepo = postgres.NewFigureRepository(pool)
		movRepo = postgres.NewMovementRepository(pool)
		analyticsRepo = postgres.NewAnalyticsRepository(pool)
	}

	aggregator := appledger.NewAggregatorUseCase(figRepo, movRepo)
	recorder := appledger.NewRecordMovementUseCase(txRunner)
	figureUC := catalog.NewFigureUseCase(txRunner, figRepo, aggregator, recorder)
	queryUC := catalog.NewQueryUseCase(figRepo, aggregator)
	summaryUC := analytics.NewSummaryUseCase(analyticsRepo)

	imageStore, err := storage.NewLocalImageStore(cfg.Storage.StaticDir, cfg.Storage.StaticURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Imágenes subidas, servidas como estáticos
	app.Static(cfg.Storage.StaticURL, cfg.Storage.StaticDir)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Figures Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FigureUC:    figureUC,
		QueryUC:     queryUC,
		Recorder:    recorder,
		Aggregator:  aggregator,
		AnalyticsUC: summaryUC,
		ImageStore:  imageStore,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
