package dto

import "github.com/shopspring/decimal"

// CSVPreviewResponse respuesta de POST /api/upload-csv: el archivo parseado
// como tabla genérica.
type CSVPreviewResponse struct {
	Message  string              `json:"message"`
	Filename string              `json:"filename"`
	Size     int                 `json:"size"`
	Rows     int                 `json:"rows"`
	Columns  []string            `json:"columns"`
	Data     []map[string]string `json:"data"`
}

// CSVFileInfo datos del archivo validado.
type CSVFileInfo struct {
	Filename       string          `json:"filename"`
	TotalRows      int             `json:"total_rows"`
	UniqueSKUs     int             `json:"unique_skus"`
	TotalUnitsSold decimal.Decimal `json:"total_units_sold"`
}

// HoldedCatalogInfo tamaño del catálogo contra el que se validó.
type HoldedCatalogInfo struct {
	TotalProducts int `json:"total_products"`
	TotalVariants int `json:"total_variants"`
	TotalSKUs     int `json:"total_skus"`
}

// ValidationRow un SKU del CSV encontrado en Holded, con el stock resultante.
type ValidationRow struct {
	SKU        string          `json:"sku"`
	CSVName    string          `json:"csv_name"`
	HoldedName string          `json:"holded_name"`
	Kind       string          `json:"kind"` // product | variant
	OldStock   decimal.Decimal `json:"old_stock"`
	SoldQty    decimal.Decimal `json:"sold_qty"`
	NewStock   decimal.Decimal `json:"new_stock"`
}

// MissingSKU un SKU del CSV sin correspondencia en Holded.
type MissingSKU struct {
	SKU     string          `json:"sku"`
	CSVName string          `json:"csv_name"`
	SoldQty decimal.Decimal `json:"sold_qty"`
}

// ValidationSummary totales de la validación.
type ValidationSummary struct {
	TotalItems   int `json:"total_items"`
	FoundItems   int `json:"found_items"`
	MissingItems int `json:"missing_items"`
}

// StockValidationResponse respuesta de POST /api/stock/validate: ventas
// agregadas por SKU comparadas con el stock global de Holded.
type StockValidationResponse struct {
	FileInfo          CSVFileInfo       `json:"file_info"`
	HoldedInfo        HoldedCatalogInfo `json:"holded_info"`
	ValidationResults []ValidationRow   `json:"validation_results"`
	MissingSKUs       []MissingSKU      `json:"missing_skus"`
	Summary           ValidationSummary `json:"summary"`
}
