package dto

import "github.com/shopspring/decimal"

// HoldedHealthResponse estado de configuración y conectividad con Holded.
type HoldedHealthResponse struct {
	Configured     bool           `json:"configured"`
	APIKeySuffix   string         `json:"api_key_suffix"`
	BaseURL        string         `json:"base_url"`
	ConnectionTest ConnectionTest `json:"connection_test"`
	ProductsCount  *int           `json:"products_count,omitempty"`
}

// WarehouseDTO un almacén de Holded.
type WarehouseDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WarehouseListResponse respuesta de GET /api/holded/warehouses.
type WarehouseListResponse struct {
	Status     string         `json:"status"`
	Count      int            `json:"count"`
	Warehouses []WarehouseDTO `json:"warehouses"`
}

// StockByWarehouseRow un producto o variante con su stock por almacén.
type StockByWarehouseRow struct {
	SKU              string                     `json:"sku"`
	Name             string                     `json:"name"`
	Type             string                     `json:"type"` // principal | variante
	StockByWarehouse map[string]decimal.Decimal `json:"stock_by_warehouse"`
}

// StockByWarehouseSummary totales del consolidado.
type StockByWarehouseSummary struct {
	TotalWarehouses int `json:"total_warehouses"`
	TotalProducts   int `json:"total_products"`
	TotalVariants   int `json:"total_variants"`
}

// StockByWarehouseResponse tabla consolidada de stock por almacén.
type StockByWarehouseResponse struct {
	Status     string                  `json:"status"`
	Warehouses []WarehouseDTO          `json:"warehouses"`
	Products   []StockByWarehouseRow   `json:"products"`
	Summary    StockByWarehouseSummary `json:"summary"`
}

// StockUpdateRequest body para PUT /api/holded/stock/update (ajuste por SKU).
type StockUpdateRequest struct {
	SKU             string          `json:"sku"`
	WarehouseID     string          `json:"warehouse_id"`
	StockAdjustment decimal.Decimal `json:"stock_adjustment"` // positivo suma, negativo resta
	Description     string          `json:"description,omitempty"`
	DryRun          bool            `json:"dry_run,omitempty"`
}

// StockUpdateProductInfo producto o variante resuelto para el ajuste.
type StockUpdateProductInfo struct {
	SKU         string  `json:"sku"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	IsVariant   bool    `json:"is_variant"`
	VariantID   *string `json:"variant_id"`
}

// StockUpdateWarehouseInfo almacén validado para el ajuste.
type StockUpdateWarehouseInfo struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
}

// StockUpdateDetail cifras del ajuste.
type StockUpdateDetail struct {
	CurrentStock    decimal.Decimal `json:"current_stock"`
	StockAdjustment decimal.Decimal `json:"stock_adjustment"`
	NewStock        decimal.Decimal `json:"new_stock"`
	Description     string          `json:"description,omitempty"`
}

// APICallPreview la llamada que se haría contra Holded (solo en dry-run).
type APICallPreview struct {
	Method  string `json:"method"`
	URL     string `json:"url"`
	Payload any    `json:"payload"`
}

// StockUpdateResponse respuesta del ajuste por SKU.
type StockUpdateResponse struct {
	Status        string                   `json:"status"` // dry_run | success
	Message       string                   `json:"message"`
	ProductInfo   StockUpdateProductInfo   `json:"product_info"`
	WarehouseInfo StockUpdateWarehouseInfo `json:"warehouse_info"`
	StockUpdate   StockUpdateDetail        `json:"stock_update"`
	APICall       *APICallPreview          `json:"api_call,omitempty"`
}
