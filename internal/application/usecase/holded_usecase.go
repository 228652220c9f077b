package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alternativecbd/glop-holded-api/internal/application/dto"
	"github.com/alternativecbd/glop-holded-api/internal/domain"
	"github.com/alternativecbd/glop-holded-api/internal/domain/entity"
	"github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
	"github.com/alternativecbd/glop-holded-api/internal/infrastructure/holded"
	"github.com/alternativecbd/glop-holded-api/pkg/config"
)

// HoldedUseCase casos de uso de consulta y ajuste contra la API de Holded.
type HoldedUseCase struct {
	client *holded.Client
	cfg    config.HoldedConfig
}

// NewHoldedUseCase construye el caso de uso.
func NewHoldedUseCase(client *holded.Client, cfg config.HoldedConfig) *HoldedUseCase {
	return &HoldedUseCase{client: client, cfg: cfg}
}

// Health comprueba configuración y conectividad con Holded.
func (uc *HoldedUseCase) Health(ctx context.Context) *dto.HoldedHealthResponse {
	resp := &dto.HoldedHealthResponse{
		Configured:   uc.client.Configured(),
		APIKeySuffix: maskAPIKey(uc.cfg.APIKey),
		BaseURL:      uc.cfg.BaseURL,
	}
	if !resp.Configured {
		resp.ConnectionTest = dto.ConnectionTest{Status: "not_configured", Message: "API key no configurada"}
		return resp
	}

	count, err := uc.client.Ping(ctx)
	switch {
	case errors.Is(err, holded.ErrUnauthorized):
		resp.ConnectionTest = dto.ConnectionTest{Status: "error", Message: "API key inválida o sin permisos"}
	case err != nil:
		resp.ConnectionTest = dto.ConnectionTest{Status: "error", Message: err.Error()}
	default:
		resp.ConnectionTest = dto.ConnectionTest{Status: "success", Message: "Conexión exitosa con Holded API"}
		resp.ProductsCount = &count
	}
	return resp
}

// Warehouses lista los almacenes de Holded.
func (uc *HoldedUseCase) Warehouses(ctx context.Context) (*dto.WarehouseListResponse, error) {
	warehouses, err := uc.client.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.WarehouseListResponse{
		Status:     "success",
		Count:      len(warehouses),
		Warehouses: make([]dto.WarehouseDTO, 0, len(warehouses)),
	}
	for _, w := range warehouses {
		out.Warehouses = append(out.Warehouses, dto.WarehouseDTO{ID: w.ID, Name: w.Name})
	}
	return out, nil
}

// StockByWarehouse consolida el stock de todos los productos y variantes con
// SKU, distribuido por almacén, en formato de tabla.
func (uc *HoldedUseCase) StockByWarehouse(ctx context.Context) (*dto.StockByWarehouseResponse, error) {
	warehouses, err := uc.client.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockByWarehouseResponse{
		Status:     "success",
		Warehouses: make([]dto.WarehouseDTO, 0, len(warehouses)),
		Products:   []dto.StockByWarehouseRow{},
	}
	for _, w := range warehouses {
		resp.Warehouses = append(resp.Warehouses, dto.WarehouseDTO{ID: w.ID, Name: w.Name})
	}
	resp.Summary.TotalWarehouses = len(warehouses)
	if len(warehouses) == 0 {
		return resp, nil
	}

	products, err := uc.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	stocks := make(map[string]entity.WarehouseStock, len(warehouses))
	for _, w := range warehouses {
		ws, err := uc.client.WarehouseStock(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		stocks[w.ID] = ws
	}

	for _, p := range products {
		if p.SKU != "" {
			row := dto.StockByWarehouseRow{
				SKU:              p.SKU,
				Name:             p.Name,
				Type:             "principal",
				StockByWarehouse: map[string]decimal.Decimal{},
			}
			ref := entity.ProductRef{ProductID: p.ID}
			for _, w := range warehouses {
				row.StockByWarehouse[w.ID] = stocks[w.ID].StockOf(ref)
			}
			resp.Products = append(resp.Products, row)
			resp.Summary.TotalProducts++
		}
		for _, v := range p.Variants {
			if v.SKU == "" {
				continue
			}
			name := p.Name
			if v.Name != "" {
				name = p.Name + " - " + v.Name
			}
			row := dto.StockByWarehouseRow{
				SKU:              v.SKU,
				Name:             name,
				Type:             "variante",
				StockByWarehouse: map[string]decimal.Decimal{},
			}
			ref := entity.ProductRef{ProductID: p.ID, IsVariant: true, VariantID: v.ID}
			for _, w := range warehouses {
				row.StockByWarehouse[w.ID] = stocks[w.ID].StockOf(ref)
			}
			resp.Products = append(resp.Products, row)
			resp.Summary.TotalVariants++
		}
	}
	return resp, nil
}

// UpdateStockBySKU aplica (o simula) un ajuste puntual de stock para un SKU
// en un almacén concreto.
func (uc *HoldedUseCase) UpdateStockBySKU(ctx context.Context, req dto.StockUpdateRequest) (*dto.StockUpdateResponse, error) {
	if req.SKU == "" || req.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	products, err := uc.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	index := reconcile.NewCatalogIndex(products)
	ref, outcome := index.Match(req.SKU)
	switch outcome {
	case reconcile.MatchNotFound:
		return nil, fmt.Errorf("%w: ningún producto o variante con SKU %q", domain.ErrNotFound, req.SKU)
	case reconcile.MatchAmbiguous:
		return nil, fmt.Errorf("%w: SKU %q duplicado en el catálogo", domain.ErrInvalidInput, req.SKU)
	}

	warehouses, err := uc.client.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	var warehouse *entity.Warehouse
	for i := range warehouses {
		if warehouses[i].ID == req.WarehouseID {
			warehouse = &warehouses[i]
			break
		}
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: almacén con ID %q", domain.ErrNotFound, req.WarehouseID)
	}

	stock, err := uc.client.WarehouseStock(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	currentStock := stock.StockOf(ref)

	resp := &dto.StockUpdateResponse{
		ProductInfo: dto.StockUpdateProductInfo{
			SKU:         req.SKU,
			ProductID:   ref.ProductID,
			ProductName: ref.ProductName,
			IsVariant:   ref.IsVariant,
		},
		WarehouseInfo: dto.StockUpdateWarehouseInfo{
			WarehouseID:   warehouse.ID,
			WarehouseName: warehouse.Name,
		},
		StockUpdate: dto.StockUpdateDetail{
			CurrentStock:    currentStock,
			StockAdjustment: req.StockAdjustment,
			NewStock:        currentStock.Add(req.StockAdjustment),
			Description:     req.Description,
		},
	}
	if ref.IsVariant {
		v := ref.VariantID
		resp.ProductInfo.VariantID = &v
	}

	if req.DryRun {
		method, url, payload := uc.client.PreviewStockUpdate(ref.ProductID, ref.ItemID(), req.WarehouseID, req.StockAdjustment, req.Description)
		resp.Status = "dry_run"
		resp.Message = "Simulación exitosa - No se realizó ninguna actualización real"
		resp.APICall = &dto.APICallPreview{Method: method, URL: url, Payload: payload}
		return resp, nil
	}

	if err := uc.client.UpdateStock(ctx, ref.ProductID, ref.ItemID(), req.WarehouseID, req.StockAdjustment, req.Description); err != nil {
		return nil, err
	}
	resp.Status = "success"
	resp.Message = "Stock actualizado exitosamente"
	return resp, nil
}

// maskAPIKey devuelve solo los últimos 4 caracteres de la API key.
func maskAPIKey(key string) string {
	if len(key) < 4 {
		return "NO CONFIGURADA"
	}
	return "..." + key[len(key)-4:]
}
