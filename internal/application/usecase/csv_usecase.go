package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alternativecbd/glop-holded-api/internal/application/dto"
	appreconcile "github.com/alternativecbd/glop-holded-api/internal/application/reconcile"
	"github.com/alternativecbd/glop-holded-api/internal/domain"
)

// CSVUseCase previsualización de archivos CSV y validación de ventas contra
// el stock global del catálogo de Holded (sin desglose por almacén).
type CSVUseCase struct {
	catalog appreconcile.CatalogProvider
}

// NewCSVUseCase construye el caso de uso.
func NewCSVUseCase(catalog appreconcile.CatalogProvider) *CSVUseCase {
	return &CSVUseCase{catalog: catalog}
}

// Preview parsea el archivo como tabla genérica y lo devuelve como JSON.
func (uc *CSVUseCase) Preview(filename string, data []byte) (*dto.CSVPreviewResponse, error) {
	if !isCSV(filename) {
		return nil, domain.ErrNotCSV
	}
	columns, records, err := appreconcile.ParseTable(data)
	if err != nil {
		return nil, err
	}
	return &dto.CSVPreviewResponse{
		Message:  "Archivo procesado exitosamente",
		Filename: filename,
		Size:     len(data),
		Rows:     len(records),
		Columns:  columns,
		Data:     records,
	}, nil
}

// skuAggregate acumulado de ventas de un SKU dentro del archivo.
type skuAggregate struct {
	units decimal.Decimal
	name  string
}

// Validate agrega las unidades vendidas por SKU a lo largo del archivo y las
// compara contra el stock global de productos y variantes de Holded. No
// escribe nada: es una comprobación previa a la reconciliación por almacén.
func (uc *CSVUseCase) Validate(ctx context.Context, filename string, data []byte) (*dto.StockValidationResponse, error) {
	if !isCSV(filename) {
		return nil, domain.ErrNotCSV
	}
	rows, err := appreconcile.ParseSalesFile(data)
	if err != nil {
		return nil, err
	}

	// Acumular por SKU preservando el orden de primera aparición.
	sales := make(map[string]*skuAggregate)
	var order []string
	totalUnits := decimal.Zero
	for _, row := range rows {
		units, err := appreconcile.ParseUnits(row.UnitsRaw)
		if err != nil {
			continue // la validación agregada ignora cantidades no parseables
		}
		agg, ok := sales[row.SKU]
		if !ok {
			agg = &skuAggregate{name: row.ProductLabel}
			sales[row.SKU] = agg
			order = append(order, row.SKU)
		}
		agg.units = agg.units.Add(units)
		totalUnits = totalUnits.Add(units)
	}

	products, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	// Mapa SKU -> stock global (productos y variantes).
	type catalogEntry struct {
		name  string
		stock decimal.Decimal
		kind  string
	}
	catalog := make(map[string]catalogEntry)
	countProducts, countVariants := 0, 0
	for _, p := range products {
		if p.SKU != "" {
			catalog[p.SKU] = catalogEntry{name: p.Name, stock: p.Stock, kind: "product"}
			countProducts++
		}
		for _, v := range p.Variants {
			if v.SKU == "" {
				continue
			}
			catalog[v.SKU] = catalogEntry{name: p.Name + " (" + v.SKU + ")", stock: v.Stock, kind: "variant"}
			countVariants++
		}
	}

	resp := &dto.StockValidationResponse{
		FileInfo: dto.CSVFileInfo{
			Filename:       filename,
			TotalRows:      len(rows),
			UniqueSKUs:     len(sales),
			TotalUnitsSold: totalUnits,
		},
		HoldedInfo: dto.HoldedCatalogInfo{
			TotalProducts: countProducts,
			TotalVariants: countVariants,
			TotalSKUs:     len(catalog),
		},
		ValidationResults: []dto.ValidationRow{},
		MissingSKUs:       []dto.MissingSKU{},
	}
	for _, sku := range order {
		agg := sales[sku]
		entry, found := catalog[sku]
		if !found {
			resp.MissingSKUs = append(resp.MissingSKUs, dto.MissingSKU{
				SKU:     sku,
				CSVName: agg.name,
				SoldQty: agg.units,
			})
			continue
		}
		resp.ValidationResults = append(resp.ValidationResults, dto.ValidationRow{
			SKU:        sku,
			CSVName:    agg.name,
			HoldedName: entry.name,
			Kind:       entry.kind,
			OldStock:   entry.stock,
			SoldQty:    agg.units,
			NewStock:   entry.stock.Sub(agg.units),
		})
	}
	resp.Summary = dto.ValidationSummary{
		TotalItems:   len(sales),
		FoundItems:   len(resp.ValidationResults),
		MissingItems: len(resp.MissingSKUs),
	}
	return resp, nil
}

func isCSV(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}
