package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alternativecbd/glop-holded-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	HoldedUC    *usecase.HoldedUseCase
	ReconcileUC *usecase.ReconcileUseCase
	StorageUC   *usecase.StorageUseCase
	CSVUC       *usecase.CSVUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Holded (catálogo y stock)
	holdedGroup := api.Group("/holded")
	holdedHandler := NewHoldedHandler(deps.HoldedUC, deps.ReconcileUC)
	holdedGroup.Get("/health", holdedHandler.Health)
	holdedGroup.Get("/warehouses", holdedHandler.Warehouses)
	holdedGroup.Get("/stock-by-warehouse", holdedHandler.StockByWarehouse)
	holdedGroup.Put("/stock/update", holdedHandler.UpdateStock)
	holdedGroup.Post("/stock/update-from-gcs", holdedHandler.UpdateFromGCS)
	holdedGroup.Post("/stock/update-from-csv", holdedHandler.UpdateFromCSV)

	// GCS (almacenamiento de reportes)
	gcsGroup := api.Group("/gcs")
	storageHandler := NewStorageHandler(deps.StorageUC)
	gcsGroup.Get("/health", storageHandler.Health)
	gcsGroup.Get("/files", storageHandler.List)
	gcsGroup.Post("/upload", storageHandler.Upload)
	gcsGroup.Get("/download/*", storageHandler.Download)
	gcsGroup.Delete("/files/*", storageHandler.Delete)
	gcsGroup.Get("/metadata/*", storageHandler.Metadata)

	// CSV (previsualización y validación)
	csvHandler := NewCSVHandler(deps.CSVUC)
	api.Post("/upload-csv", csvHandler.Preview)
	api.Post("/stock/validate", csvHandler.Validate)
}
