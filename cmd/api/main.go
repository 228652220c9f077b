package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appreconcile "github.com/alternativecbd/glop-holded-api/internal/application/reconcile"
	"github.com/alternativecbd/glop-holded-api/internal/application/usecase"
	"github.com/alternativecbd/glop-holded-api/internal/infrastructure/gcs"
	"github.com/alternativecbd/glop-holded-api/internal/infrastructure/holded"
	httpRouter "github.com/alternativecbd/glop-holded-api/internal/interfaces/http"
	"github.com/alternativecbd/glop-holded-api/pkg/config"
	"github.com/alternativecbd/glop-holded-api/pkg/logger"
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
		Msg("iniciando aplicación")

	if cfg.Holded.APIKey == "" {
		log.Warn().Msg("HOLDED_API_KEY no configurada, los endpoints de Holded devolverán error")
	}
	holdedClient := holded.NewClient(cfg.Holded.APIKey, cfg.Holded.BaseURL)

	// GCS es opcional: sin credenciales la app arranca igual y solo
	// quedan deshabilitados los endpoints de bucket y los run logs.
	ctx := context.Background()
	var gcsClient *gcs.Client
	if cfg.GCS.Configured() {
		gcsClient, err = gcs.NewClient(ctx, cfg.GCS.CredentialsBase64, cfg.GCS.BucketName)
		if err != nil {
			log.Warn().Err(err).Msg("cliente GCS no disponible, se continúa sin almacenamiento")
			gcsClient = nil
		} else {
			defer gcsClient.Close()
		}
	} else {
		log.Warn().Msg("GCS_CREDENTIALS_BASE64 no configurada, almacenamiento deshabilitado")
	}

	pipeline := appreconcile.NewPipeline(holdedClient, cfg.Reconcile.WarehouseAliases, log)
	applier := appreconcile.NewApplier(holdedClient, log)

	var store appreconcile.ObjectStore
	var runLogs appreconcile.RunLogStore
	if gcsClient != nil {
		store = gcsClient
		runLogs = gcsClient
	}

	holdedUC := usecase.NewHoldedUseCase(holdedClient, cfg.Holded)
	reconcileUC := usecase.NewReconcileUseCase(pipeline, applier, store, runLogs, log)
	storageUC := usecase.NewStorageUseCase(gcsClient, cfg.GCS)
	csvUC := usecase.NewCSVUseCase(holdedClient)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    25 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Glop-Holded API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		HoldedUC:    holdedUC,
		ReconcileUC: reconcileUC,
		StorageUC:   storageUC,
		CSVUC:       csvUC,
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
