package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alternativecbd/glop-holded-api/internal/application/reconcile"
	"github.com/alternativecbd/glop-holded-api/internal/domain"
	"github.com/alternativecbd/glop-holded-api/internal/domain/entity"
	domrec "github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
	"github.com/alternativecbd/glop-holded-api/pkg/logger"
)

// fakeGateway implementa InventoryGateway en memoria y registra las
// escrituras que recibe.
type fakeGateway struct {
	warehouses []entity.Warehouse
	products   []entity.Product
	stocks     map[string]entity.WarehouseStock

	warehousesErr error
	productsErr   error
	stockErr      map[string]error
	writeErr      map[string]error // item_id -> error

	writes []fakeWrite
}

type fakeWrite struct {
	ProductID   string
	ItemID      string
	WarehouseID string
	Adjustment  decimal.Decimal
	Description string
}

func (f *fakeGateway) ListWarehouses(context.Context) ([]entity.Warehouse, error) {
	return f.warehouses, f.warehousesErr
}

func (f *fakeGateway) ListProducts(context.Context) ([]entity.Product, error) {
	return f.products, f.productsErr
}

func (f *fakeGateway) WarehouseStock(_ context.Context, warehouseID string) (entity.WarehouseStock, error) {
	if err := f.stockErr[warehouseID]; err != nil {
		return entity.WarehouseStock{}, err
	}
	ws, ok := f.stocks[warehouseID]
	if !ok {
		return entity.WarehouseStock{WarehouseID: warehouseID}, nil
	}
	return ws, nil
}

func (f *fakeGateway) UpdateStock(_ context.Context, productID, itemID, warehouseID string, adjustment decimal.Decimal, description string) error {
	if err := f.writeErr[itemID]; err != nil {
		return err
	}
	f.writes = append(f.writes, fakeWrite{
		ProductID:   productID,
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Adjustment:  adjustment,
		Description: description,
	})
	return nil
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		warehouses: []entity.Warehouse{
			{ID: "w1", Name: "Tienda Centro"},
			{ID: "w2", Name: "Tienda Cáceres"},
		},
		products: []entity.Product{
			{ID: "p1", SKU: "SKU-123", Name: "Aceite CBD 10%"},
			{
				ID: "p2", Name: "Camiseta logo",
				Variants: []entity.Variant{{ID: "v1", SKU: "CAM-M", Name: "Talla M"}},
			},
		},
		stocks: map[string]entity.WarehouseStock{
			"w1": {
				WarehouseID: "w1",
				Products: map[string]entity.ProductStock{
					"p1": {ProductID: "p1", Stock: decimal.NewFromInt(20)},
					"p2": {ProductID: "p2", Variants: map[string]decimal.Decimal{"v1": decimal.NewFromInt(3)}},
				},
			},
		},
	}
}

func csvFile(rows ...string) []byte {
	out := "TERMINAL;ARTICULO;C.BARRAS ARTICULO;UNIDADES\n"
	for _, r := range rows {
		out += r + "\n"
	}
	return []byte(out)
}

func TestPipeline_FilaCorrecta(t *testing.T) {
	gw := newFakeGateway()
	p := reconcile.NewPipeline(gw, nil, logger.Nop())

	result, err := p.Run(context.Background(), csvFile("Tienda Centro;Aceite;SKU-123;5"))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Updates, 1)

	u := result.Updates[0]
	assert.Equal(t, "w1", u.WarehouseID)
	assert.Equal(t, "p1", u.ProductID)
	assert.False(t, u.IsVariant)
	assert.Equal(t, "5", u.UnitsSold.String())
	assert.Equal(t, "-5", u.Adjustment.String())
	assert.Equal(t, "20", u.CurrentStock.String())
	assert.Equal(t, "15", u.NewStock.String())
	assert.Equal(t, domrec.StatusSimulated, u.Status)
}

// Sobreventa: el stock proyectado puede quedar negativo, no se recorta.
func TestPipeline_StockNegativo(t *testing.T) {
	gw := newFakeGateway()
	p := reconcile.NewPipeline(gw, nil, logger.Nop())

	result, err := p.Run(context.Background(), csvFile("Tienda Centro;Camiseta;CAM-M;5"))
	require.NoError(t, err)
	require.Len(t, result.Updates, 1)

	u := result.Updates[0]
	assert.True(t, u.IsVariant)
	assert.Equal(t, "v1", u.VariantID)
	assert.Equal(t, "3", u.CurrentStock.String())
	assert.Equal(t, "-2", u.NewStock.String())
}

// El terminal del CSV se resuelve por nombre sin distinguir tildes ni
// mayúsculas, y también por alias configurado.
func TestPipeline_ResolucionDeTerminal(t *testing.T) {
	gw := newFakeGateway()
	aliases := map[string]string{"CAJA 2": "w2"}
	p := reconcile.NewPipeline(gw, aliases, logger.Nop())

	result, err := p.Run(context.Background(), csvFile(
		"TIENDA CACERES;Aceite;SKU-123;1",
		"CAJA 2;Aceite;SKU-123;1",
	))
	require.NoError(t, err)
	require.Len(t, result.Updates, 2)
	assert.Equal(t, "w2", result.Updates[0].WarehouseID)
	assert.Equal(t, "w2", result.Updates[1].WarehouseID)
	// w2 no tiene snapshot con productos: stock actual cero.
	assert.Equal(t, "0", result.Updates[0].CurrentStock.String())
	assert.Equal(t, "-1", result.Updates[0].NewStock.String())
}

// Cada fila fallida produce exactamente un error clasificado y nunca
// aborta el resto de la ejecución.
func TestPipeline_ErroresPorFila(t *testing.T) {
	gw := newFakeGateway()
	p := reconcile.NewPipeline(gw, nil, logger.Nop())

	result, err := p.Run(context.Background(), csvFile(
		"Tienda Centro;Aceite;SKU-123;abc", // cantidad no parseable
		"Terminal Fantasma;Aceite;SKU-123;1",
		"Tienda Centro;Misterio;999-ZZZ;1",
		"Tienda Centro;Aceite;SKU-123;2", // esta sí avanza
	))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Processed)
	require.Len(t, result.Errors, 3)
	require.Len(t, result.Updates, 1)
	assert.Equal(t, result.Processed, len(result.Updates)+len(result.Errors))

	assert.Equal(t, domrec.ErrInvalidQuantity, result.Errors[0].Kind)
	assert.Equal(t, domrec.ErrWarehouseNotFound, result.Errors[1].Kind)
	assert.Equal(t, domrec.ErrSkuNotFound, result.Errors[2].Kind)
}

func TestPipeline_SKUDuplicadoEsAmbiguo(t *testing.T) {
	gw := newFakeGateway()
	gw.products = append(gw.products, entity.Product{ID: "p9", SKU: "SKU-123"})
	p := reconcile.NewPipeline(gw, nil, logger.Nop())

	result, err := p.Run(context.Background(), csvFile("Tienda Centro;Aceite;SKU-123;1"))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, domrec.ErrSkuAmbiguous, result.Errors[0].Kind)
}

// La caída de cualquiera de los snapshots aborta la ejecución completa.
func TestPipeline_UpstreamCaido(t *testing.T) {
	for name, mutate := range map[string]func(*fakeGateway){
		"almacenes": func(g *fakeGateway) { g.warehousesErr = errors.New("timeout") },
		"productos": func(g *fakeGateway) { g.productsErr = errors.New("timeout") },
		"stock":     func(g *fakeGateway) { g.stockErr = map[string]error{"w1": errors.New("timeout")} },
	} {
		t.Run(name, func(t *testing.T) {
			gw := newFakeGateway()
			mutate(gw)
			p := reconcile.NewPipeline(gw, nil, logger.Nop())

			_, err := p.Run(context.Background(), csvFile("Tienda Centro;Aceite;SKU-123;1"))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		})
	}
}

// Solo se consulta el stock de los almacenes que el CSV referencia.
func TestPipeline_SoloAlmacenesReferenciados(t *testing.T) {
	gw := newFakeGateway()
	// w2 roto: si el pipeline lo consultara, la ejecución fallaría.
	gw.stockErr = map[string]error{"w2": errors.New("no debía consultarse")}
	p := reconcile.NewPipeline(gw, nil, logger.Nop())

	result, err := p.Run(context.Background(), csvFile("Tienda Centro;Aceite;SKU-123;1"))
	require.NoError(t, err)
	assert.Len(t, result.Updates, 1)
}

// Volver a resolver el SKU y el terminal de cada actualización produce las
// mismas referencias: el emparejamiento es determinista.
func TestPipeline_ReemparejamientoDeterminista(t *testing.T) {
	gw := newFakeGateway()
	p := reconcile.NewPipeline(gw, nil, logger.Nop())

	result, err := p.Run(context.Background(), csvFile(
		"Tienda Centro;Aceite;SKU-123;1",
		"Tienda Centro;Camiseta;CAM-M;2",
	))
	require.NoError(t, err)

	resolver := domrec.NewWarehouseResolver(gw.warehouses, nil)
	index := domrec.NewCatalogIndex(gw.products)
	for _, u := range result.Updates {
		ref, outcome := index.Match(u.SKU)
		require.Equal(t, domrec.MatchFound, outcome)
		assert.Equal(t, u.ProductID, ref.ProductID)
		assert.Equal(t, u.VariantID, ref.VariantID)

		wh, ok := resolver.Resolve(u.Terminal)
		require.True(t, ok)
		assert.Equal(t, u.WarehouseID, wh.WarehouseID)
	}
}

// Propiedad de conservación sobre un lote variado: procesadas ==
// actualizaciones + errores, y Updated() cuenta también las simuladas.
func TestPipeline_InvarianteDeConteo(t *testing.T) {
	gw := newFakeGateway()
	p := reconcile.NewPipeline(gw, nil, logger.Nop())

	var rows []string
	for i := 0; i < 10; i++ {
		rows = append(rows, fmt.Sprintf("Tienda Centro;Aceite;SKU-123;%d", i+1))
	}
	rows = append(rows,
		"Tienda Centro;Misterio;999-ZZZ;1",
		"Terminal Fantasma;Aceite;SKU-123;1",
	)

	result, err := p.Run(context.Background(), csvFile(rows...))
	require.NoError(t, err)
	assert.Equal(t, 12, result.Processed)
	assert.Equal(t, result.Processed, len(result.Updates)+len(result.Errors))
	assert.Equal(t, len(result.Updates), result.Updated())
}
