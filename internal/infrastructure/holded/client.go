package holded

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alternativecbd/glop-holded-api/internal/application/reconcile"
	"github.com/alternativecbd/glop-holded-api/internal/domain"
	"github.com/alternativecbd/glop-holded-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa los puertos del pipeline.
var _ reconcile.InventoryGateway = (*Client)(nil)

// ErrUnauthorized indica una API key inválida o sin permisos (HTTP 401).
var ErrUnauthorized = errors.New("holded: API key inválida o sin permisos")

// Client adaptador REST para la API Invoicing de Holded.
// Usa net/http de la librería estándar; Holded no publica SDK de Go.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL sin barra final, p. ej.
// "https://api.holded.com/api/invoicing/v1".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured indica si hay API key presente.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// ── Estructuras wire de la API de Holded ─────────────────────────────────────

type wireWarehouse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireVariant struct {
	ID      string  `json:"id"`
	SKU     string  `json:"sku"`
	Barcode string  `json:"barcode"`
	Name    string  `json:"name"`
	Stock   float64 `json:"stock"`
}

type wireProduct struct {
	ID       string        `json:"id"`
	SKU      string        `json:"sku"`
	Barcode  string        `json:"barcode"`
	Name     string        `json:"name"`
	Stock    float64       `json:"stock"`
	Variants []wireVariant `json:"variants"`
}

type wireWarehouseStock struct {
	Warehouse struct {
		Products []wireStockItem `json:"products"`
	} `json:"warehouse"`
}

type wireStockItem struct {
	ProductID string          `json:"product_id"`
	Stock     float64         `json:"stock"`
	Variants  json.RawMessage `json:"variants"` // objeto {variant_id: stock} o vacío
}

// wireStockPayload cuerpo del PUT de ajuste de stock:
// {"stock": {warehouse_id: {item_id: adjustment}}, "desc": "..."}.
type wireStockPayload struct {
	Stock map[string]map[string]decimal.Decimal `json:"stock"`
	Desc  string                                `json:"desc,omitempty"`
}

// ── Puertos del pipeline ─────────────────────────────────────────────────────

// ListWarehouses obtiene el listado de almacenes.
func (c *Client) ListWarehouses(ctx context.Context) ([]entity.Warehouse, error) {
	var wire []wireWarehouse
	if err := c.get(ctx, "/warehouses", &wire); err != nil {
		return nil, err
	}
	out := make([]entity.Warehouse, 0, len(wire))
	for _, w := range wire {
		if w.ID == "" {
			continue
		}
		out = append(out, entity.Warehouse{ID: w.ID, Name: w.Name})
	}
	return out, nil
}

// ListProducts obtiene el snapshot de catálogo con variantes.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var wire []wireProduct
	if err := c.get(ctx, "/products", &wire); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(wire))
	for _, p := range wire {
		product := entity.Product{
			ID:      p.ID,
			SKU:     p.SKU,
			Barcode: p.Barcode,
			Name:    p.Name,
			Stock:   decimal.NewFromFloat(p.Stock),
		}
		for _, v := range p.Variants {
			product.Variants = append(product.Variants, entity.Variant{
				ID:      v.ID,
				SKU:     v.SKU,
				Barcode: v.Barcode,
				Name:    v.Name,
				Stock:   decimal.NewFromFloat(v.Stock),
			})
		}
		out = append(out, product)
	}
	return out, nil
}

// WarehouseStock obtiene el snapshot de stock de un almacén.
func (c *Client) WarehouseStock(ctx context.Context, warehouseID string) (entity.WarehouseStock, error) {
	var wire wireWarehouseStock
	if err := c.get(ctx, "/warehouses/"+warehouseID+"/stock", &wire); err != nil {
		return entity.WarehouseStock{}, err
	}
	ws := entity.WarehouseStock{
		WarehouseID: warehouseID,
		Products:    make(map[string]entity.ProductStock, len(wire.Warehouse.Products)),
	}
	for _, item := range wire.Warehouse.Products {
		if item.ProductID == "" {
			continue
		}
		ws.Products[item.ProductID] = entity.ProductStock{
			ProductID: item.ProductID,
			Stock:     decimal.NewFromFloat(item.Stock),
			Variants:  decodeVariantStock(item.Variants),
		}
	}
	return ws, nil
}

// decodeVariantStock tolera que Holded devuelva "variants" como objeto,
// como lista vacía o ausente.
func decodeVariantStock(raw json.RawMessage) map[string]decimal.Decimal {
	if len(raw) == 0 {
		return nil
	}
	var asMap map[string]float64
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(asMap))
	for id, qty := range asMap {
		out[id] = decimal.NewFromFloat(qty)
	}
	return out
}

// UpdateStock emite un ajuste de stock contra Holded. itemID es la variante
// si el producto emparejado lo es, o el propio producto en caso contrario;
// el endpoint siempre se dirige al producto padre.
func (c *Client) UpdateStock(ctx context.Context, productID, itemID, warehouseID string, adjustment decimal.Decimal, description string) error {
	payload := wireStockPayload{
		Stock: map[string]map[string]decimal.Decimal{
			warehouseID: {itemID: adjustment},
		},
		Desc: description,
	}
	return c.put(ctx, "/products/"+productID+"/stock", payload)
}

// PreviewStockUpdate devuelve la llamada que haría UpdateStock, para el modo
// dry-run del endpoint de ajuste por SKU.
func (c *Client) PreviewStockUpdate(productID, itemID, warehouseID string, adjustment decimal.Decimal, description string) (method, url string, payload any) {
	return http.MethodPut, c.baseURL + "/products/" + productID + "/stock", wireStockPayload{
		Stock: map[string]map[string]decimal.Decimal{
			warehouseID: {itemID: adjustment},
		},
		Desc: description,
	}
}

// Ping comprueba conectividad y credenciales; devuelve el número de
// productos visibles con la API key actual.
func (c *Client) Ping(ctx context.Context) (int, error) {
	var wire []wireProduct
	if err := c.get(ctx, "/products", &wire); err != nil {
		return 0, err
	}
	return len(wire), nil
}

// ── Transporte ───────────────────────────────────────────────────────────────

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.apiKey == "" {
		return domain.ErrAPIKeyNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("holded: crear request: %w", err)
	}
	req.Header.Set("key", c.apiKey)
	req.Header.Set("accept", "application/json")
	return c.do(req, out)
}

func (c *Client) put(ctx context.Context, path string, body any) error {
	if c.apiKey == "" {
		return domain.ErrAPIKeyNotConfigured
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("holded: serializar payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("holded: crear request: %w", err)
	}
	req.Header.Set("key", c.apiKey)
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return fmt.Errorf("holded: timeout o cancelación: %w", req.Context().Err())
		}
		return fmt.Errorf("holded: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("holded: leer respuesta: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("holded: HTTP %d: %s", resp.StatusCode, truncate(rawBody, 512))
	}

	if out == nil || len(rawBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("holded: decodificar respuesta: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
