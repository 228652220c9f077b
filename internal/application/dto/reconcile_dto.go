package dto

import "github.com/shopspring/decimal"

// StockUpdateFromGCSRequest body para POST /api/holded/stock/update-from-gcs.
// DryRun por defecto true: solo simula si no se indica lo contrario.
type StockUpdateFromGCSRequest struct {
	GsURI       string `json:"gs_uri"`
	DryRun      *bool  `json:"dry_run,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsDryRun aplica el valor por defecto (true).
func (r StockUpdateFromGCSRequest) IsDryRun() bool {
	if r.DryRun == nil {
		return true
	}
	return *r.DryRun
}

// StockUpdateResultDTO una actualización calculada (y quizá aplicada) por fila.
type StockUpdateResultDTO struct {
	Row          int             `json:"row"`
	SKU          string          `json:"sku"`
	Product      string          `json:"product"`
	Warehouse    string          `json:"warehouse"`
	WarehouseID  string          `json:"warehouse_id"`
	UnitsSold    decimal.Decimal `json:"units_sold"`
	Adjustment   decimal.Decimal `json:"adjustment"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	NewStock     decimal.Decimal `json:"new_stock"`
	Status       string          `json:"status"` // simulated, applied, failed
}

// RowErrorDTO una fila que falló en resolución, emparejamiento o aplicación.
type RowErrorDTO struct {
	Row      int             `json:"row"`
	SKU      string          `json:"sku"`
	Product  string          `json:"product"`
	Terminal string          `json:"terminal"`
	Units    decimal.Decimal `json:"units"`
	Kind     string          `json:"error_kind"`
	Error    string          `json:"error"`
}

// ReconciliationResponse resultado agregado de una ejecución del pipeline.
// Invariante: processed == len(updates) + len(errors).
type ReconciliationResponse struct {
	RunID     string                 `json:"run_id"`
	DryRun    bool                   `json:"dry_run"`
	Processed int                    `json:"processed"`
	Updated   int                    `json:"updated"`
	Updates   []StockUpdateResultDTO `json:"updates"`
	Errors    []RowErrorDTO          `json:"errors"`
}
