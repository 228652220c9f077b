package reconcile

import (
	"context"
	"fmt"

	"github.com/alternativecbd/glop-holded-api/internal/domain"
	"github.com/alternativecbd/glop-holded-api/internal/domain/entity"
	domrec "github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
	"github.com/alternativecbd/glop-holded-api/pkg/logger"
)

// Pipeline orquesta la reconciliación de un CSV de ventas contra Holded:
// por cada fila resuelve almacén, empareja producto/variante, calcula el
// ajuste y acumula el resultado. El fallo de una fila nunca aborta la
// ejecución; solo la indisponibilidad de los snapshots (catálogo, almacenes,
// stock) hace fallar la ejecución completa.
type Pipeline struct {
	gateway InventoryGateway
	aliases map[string]string // alias extra de terminal -> warehouse_id
	log     *logger.Logger
}

// NewPipeline construye el pipeline.
func NewPipeline(gateway InventoryGateway, extraAliases map[string]string, log *logger.Logger) *Pipeline {
	return &Pipeline{gateway: gateway, aliases: extraAliases, log: log}
}

// Run procesa el archivo completo y devuelve el resultado agregado con todos
// los registros en estado "simulated". La aplicación real (o no) de los
// ajustes es responsabilidad del Applier.
func (p *Pipeline) Run(ctx context.Context, fileBytes []byte) (*domrec.Result, error) {
	rows, err := ParseSalesFile(fileBytes)
	if err != nil {
		return nil, err
	}

	warehouses, err := p.gateway.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listar almacenes: %v", domain.ErrUpstreamUnavailable, err)
	}
	resolver := domrec.NewWarehouseResolver(warehouses, p.aliases)

	products, err := p.gateway.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listar productos: %v", domain.ErrUpstreamUnavailable, err)
	}
	index := domrec.NewCatalogIndex(products)

	stocks, err := p.fetchStocks(ctx, rows, resolver)
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Int("filas", len(rows)).
		Int("almacenes", len(warehouses)).
		Int("claves_catalogo", index.Len()).
		Msg("reconciliación iniciada")

	result := &domrec.Result{}
	for _, row := range rows {
		p.processRow(row, resolver, index, stocks, result)
	}

	p.log.Info().
		Int("procesadas", result.Processed).
		Int("actualizaciones", result.Updated()).
		Int("errores", len(result.Errors)).
		Msg("reconciliación completada")
	return result, nil
}

// fetchStocks obtiene el snapshot de stock solo de los almacenes que el CSV
// referencia realmente.
func (p *Pipeline) fetchStocks(
	ctx context.Context,
	rows []SalesRow,
	resolver *domrec.WarehouseResolver,
) (map[string]entity.WarehouseStock, error) {
	used := make(map[string]struct{})
	for _, row := range rows {
		if ref, ok := resolver.Resolve(row.Terminal); ok {
			used[ref.WarehouseID] = struct{}{}
		}
	}
	stocks := make(map[string]entity.WarehouseStock, len(used))
	for id := range used {
		ws, err := p.gateway.WarehouseStock(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: stock del almacén %s: %v", domain.ErrUpstreamUnavailable, id, err)
		}
		stocks[id] = ws
	}
	return stocks, nil
}

// processRow ejecuta los pasos de una fila y acumula exactamente un
// StockUpdate o un RowError en el resultado.
func (p *Pipeline) processRow(
	row SalesRow,
	resolver *domrec.WarehouseResolver,
	index *domrec.CatalogIndex,
	stocks map[string]entity.WarehouseStock,
	result *domrec.Result,
) {
	units, err := ParseUnits(row.UnitsRaw)
	if err != nil {
		result.AddError(domrec.RowError{
			Row:      row.Row,
			SKU:      row.SKU,
			Product:  row.ProductLabel,
			Terminal: row.Terminal,
			Kind:     domrec.ErrInvalidQuantity,
			Detail:   fmt.Sprintf("cantidad no parseable: %q", row.UnitsRaw),
		})
		return
	}

	warehouse, ok := resolver.Resolve(row.Terminal)
	if !ok {
		result.AddError(domrec.RowError{
			Row:       row.Row,
			SKU:       row.SKU,
			Product:   row.ProductLabel,
			Terminal:  row.Terminal,
			UnitsSold: units,
			Kind:      domrec.ErrWarehouseNotFound,
			Detail:    fmt.Sprintf("almacén %q no encontrado", row.Terminal),
		})
		return
	}

	ref, outcome := index.Match(row.SKU)
	switch outcome {
	case domrec.MatchNotFound:
		result.AddError(domrec.RowError{
			Row:       row.Row,
			SKU:       row.SKU,
			Product:   row.ProductLabel,
			Terminal:  row.Terminal,
			UnitsSold: units,
			Kind:      domrec.ErrSkuNotFound,
			Detail:    fmt.Sprintf("SKU %q no encontrado", row.SKU),
		})
		return
	case domrec.MatchAmbiguous:
		result.AddError(domrec.RowError{
			Row:       row.Row,
			SKU:       row.SKU,
			Product:   row.ProductLabel,
			Terminal:  row.Terminal,
			UnitsSold: units,
			Kind:      domrec.ErrSkuAmbiguous,
			Detail:    fmt.Sprintf("SKU %q duplicado en el catálogo", row.SKU),
		})
		return
	}

	currentStock := stocks[warehouse.WarehouseID].StockOf(ref)
	adjustment, newStock := domrec.ComputeDelta(currentStock, units)

	result.AddUpdate(domrec.StockUpdate{
		Row:           row.Row,
		SKU:           row.SKU,
		ProductName:   ref.ProductName,
		ProductID:     ref.ProductID,
		VariantID:     ref.VariantID,
		IsVariant:     ref.IsVariant,
		WarehouseID:   warehouse.WarehouseID,
		WarehouseName: warehouse.WarehouseName,
		Terminal:      row.Terminal,
		UnitsSold:     units,
		Adjustment:    adjustment,
		CurrentStock:  currentStock,
		NewStock:      newStock,
		Status:        domrec.StatusSimulated,
	})
}
