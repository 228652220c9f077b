package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alternativecbd/glop-holded-api/internal/application/dto"
	appreconcile "github.com/alternativecbd/glop-holded-api/internal/application/reconcile"
	"github.com/alternativecbd/glop-holded-api/internal/domain"
	domrec "github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
	"github.com/alternativecbd/glop-holded-api/pkg/logger"
)

// ReconcileUseCase orquesta una ejecución completa de reconciliación:
// obtención del CSV (GCS o subida directa), pipeline, aplicación de ajustes
// y subida best-effort del run log.
type ReconcileUseCase struct {
	pipeline *appreconcile.Pipeline
	applier  *appreconcile.Applier
	store    appreconcile.ObjectStore // nil si GCS no está configurado
	logs     appreconcile.RunLogStore // nil si GCS no está configurado
	log      *logger.Logger
}

// NewReconcileUseCase construye el caso de uso. store y logs pueden ser nil
// cuando no hay credenciales de GCS: la reconciliación desde subida directa
// sigue funcionando, solo sin run logs persistidos.
func NewReconcileUseCase(
	pipeline *appreconcile.Pipeline,
	applier *appreconcile.Applier,
	store appreconcile.ObjectStore,
	logs appreconcile.RunLogStore,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{pipeline: pipeline, applier: applier, store: store, logs: logs, log: log}
}

// runLogPayload estructura del log JSON subido al bucket por cada ejecución.
type runLogPayload struct {
	RunID          string                      `json:"run_id"`
	TimestampStart string                      `json:"timestamp_start"`
	TimestampEnd   string                      `json:"timestamp_end"`
	DurationSecs   float64                     `json:"duration_seconds"`
	Input          string                      `json:"input"`
	DryRun         bool                        `json:"dry_run"`
	Status         string                      `json:"status"` // success | error
	Error          string                      `json:"error,omitempty"`
	Results        *dto.ReconciliationResponse `json:"results,omitempty"`
}

// RunFromGCS ejecuta el pipeline sobre un CSV referenciado por URI gs://.
func (uc *ReconcileUseCase) RunFromGCS(ctx context.Context, req dto.StockUpdateFromGCSRequest) (*dto.ReconciliationResponse, error) {
	if uc.store == nil {
		return nil, domain.ErrGCSNotConfigured
	}
	data, err := uc.store.Fetch(ctx, req.GsURI)
	if err != nil {
		return nil, err
	}
	return uc.run(ctx, req.GsURI, data, req.IsDryRun(), req.Description)
}

// RunFromUpload ejecuta el pipeline sobre un CSV subido directamente.
func (uc *ReconcileUseCase) RunFromUpload(ctx context.Context, filename string, data []byte, dryRun bool, description string) (*dto.ReconciliationResponse, error) {
	return uc.run(ctx, "upload:"+filename, data, dryRun, description)
}

func (uc *ReconcileUseCase) run(ctx context.Context, input string, data []byte, dryRun bool, description string) (*dto.ReconciliationResponse, error) {
	runID := uuid.New().String()
	start := time.Now().UTC()
	payload := runLogPayload{
		RunID:          runID,
		TimestampStart: start.Format(time.RFC3339),
		Input:          input,
		DryRun:         dryRun,
	}

	result, err := uc.pipeline.Run(ctx, data)
	if err != nil {
		payload.Status = "error"
		payload.Error = err.Error()
		uc.uploadRunLog(ctx, start, payload)
		return nil, err
	}
	uc.applier.Apply(ctx, result, dryRun, description)

	resp := toReconciliationResponse(runID, dryRun, result)
	payload.Status = "success"
	payload.Results = resp
	uc.uploadRunLog(ctx, start, payload)
	return resp, nil
}

// uploadRunLog sube el log de la ejecución; un fallo aquí nunca hace fallar
// la reconciliación.
func (uc *ReconcileUseCase) uploadRunLog(ctx context.Context, start time.Time, payload runLogPayload) {
	if uc.logs == nil {
		return
	}
	end := time.Now().UTC()
	payload.TimestampEnd = end.Format(time.RFC3339)
	payload.DurationSecs = end.Sub(start).Seconds()

	name := "logs/stock_update_log_" + end.Format("20060102_150405") + ".json"
	if err := uc.logs.StoreRunLog(ctx, name, payload); err != nil {
		uc.log.Warn().Err(err).Str("objeto", name).Msg("no se pudo subir el run log")
		return
	}
	uc.log.Info().Str("objeto", name).Str("run_id", payload.RunID).Msg("run log subido")
}

func toReconciliationResponse(runID string, dryRun bool, result *domrec.Result) *dto.ReconciliationResponse {
	resp := &dto.ReconciliationResponse{
		RunID:     runID,
		DryRun:    dryRun,
		Processed: result.Processed,
		Updated:   result.Updated(),
		Updates:   make([]dto.StockUpdateResultDTO, 0, len(result.Updates)),
		Errors:    make([]dto.RowErrorDTO, 0, len(result.Errors)),
	}
	for _, u := range result.Updates {
		resp.Updates = append(resp.Updates, dto.StockUpdateResultDTO{
			Row:          u.Row,
			SKU:          u.SKU,
			Product:      u.ProductName,
			Warehouse:    u.WarehouseName,
			WarehouseID:  u.WarehouseID,
			UnitsSold:    u.UnitsSold,
			Adjustment:   u.Adjustment,
			CurrentStock: u.CurrentStock,
			NewStock:     u.NewStock,
			Status:       u.Status,
		})
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, dto.RowErrorDTO{
			Row:      e.Row,
			SKU:      e.SKU,
			Product:  e.Product,
			Terminal: e.Terminal,
			Units:    e.UnitsSold,
			Kind:     string(e.Kind),
			Error:    e.Detail,
		})
	}
	return resp
}
