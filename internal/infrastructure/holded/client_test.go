package holded_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alternativecbd/glop-holded-api/internal/domain"
	"github.com/alternativecbd/glop-holded-api/internal/domain/entity"
	"github.com/alternativecbd/glop-holded-api/internal/infrastructure/holded"
)

const testAPIKey = "test-api-key"

// newTestServer levanta un servidor que verifica la cabecera de
// autenticación de Holded antes de delegar en el handler.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *holded.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("key") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, holded.NewClient(testAPIKey, srv.URL)
}

func TestListWarehouses(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/warehouses", r.URL.Path)
		io.WriteString(w, `[{"id":"w1","name":"Tienda Centro"},{"id":"","name":"basura"},{"id":"w2","name":"Almacén"}]`)
	})

	out, err := client.ListWarehouses(context.Background())
	require.NoError(t, err)
	// Las entradas sin ID se descartan.
	assert.Equal(t, []entity.Warehouse{
		{ID: "w1", Name: "Tienda Centro"},
		{ID: "w2", Name: "Almacén"},
	}, out)
}

func TestListProducts_ConVariantes(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		io.WriteString(w, `[
			{"id":"p1","sku":"SKU-1","barcode":"840000001","name":"Aceite","stock":20},
			{"id":"p2","name":"Camiseta","variants":[{"id":"v1","sku":"CAM-M","name":"Talla M","stock":3.5}]}
		]`)
	})

	out, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "SKU-1", out[0].SKU)
	assert.Equal(t, "20", out[0].Stock.String())
	require.Len(t, out[1].Variants, 1)
	assert.Equal(t, "CAM-M", out[1].Variants[0].SKU)
	assert.Equal(t, "3.5", out[1].Variants[0].Stock.String())
}

func TestWarehouseStock(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/warehouses/w1/stock", r.URL.Path)
		io.WriteString(w, `{"warehouse":{"products":[
			{"product_id":"p1","stock":20},
			{"product_id":"p2","stock":0,"variants":{"v1":3,"v2":1.5}},
			{"product_id":"p3","variants":[]}
		]}}`)
	})

	ws, err := client.WarehouseStock(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", ws.WarehouseID)
	require.Len(t, ws.Products, 3)

	assert.Equal(t, "20", ws.Products["p1"].Stock.String())
	assert.Equal(t, "3", ws.Products["p2"].Variants["v1"].String())
	assert.Equal(t, "1.5", ws.Products["p2"].Variants["v2"].String())
	// "variants" como lista vacía se tolera sin desglose.
	assert.Nil(t, ws.Products["p3"].Variants)
}

// El ajuste de stock va siempre dirigido al producto padre, con el cuerpo
// anidado {"stock": {almacén: {item: ajuste}}}.
func TestUpdateStock_Payload(t *testing.T) {
	var captured struct {
		Stock map[string]map[string]float64 `json:"stock"`
		Desc  string                        `json:"desc"`
	}
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/p2/stock", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("content-type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.UpdateStock(context.Background(), "p2", "v1", "w1", decimal.NewFromInt(-5), "cierre de caja")
	require.NoError(t, err)
	assert.Equal(t, float64(-5), captured.Stock["w1"]["v1"])
	assert.Equal(t, "cierre de caja", captured.Desc)
}

func TestClient_401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)
	client := holded.NewClient("clave-mala", srv.URL)

	_, err := client.ListWarehouses(context.Background())
	assert.ErrorIs(t, err, holded.ErrUnauthorized)
}

func TestClient_SinAPIKey(t *testing.T) {
	client := holded.NewClient("", "http://localhost:0")

	_, err := client.ListProducts(context.Background())
	assert.ErrorIs(t, err, domain.ErrAPIKeyNotConfigured)
	assert.False(t, client.Configured())
}

func TestClient_ErrorHTTPGenerico(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream roto")
	})

	_, err := client.ListWarehouses(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
