package entity

import "github.com/shopspring/decimal"

// ProductStock es el stock de un producto dentro de un almacén, con el
// desglose por variante tal como lo devuelve Holded.
type ProductStock struct {
	ProductID string
	Stock     decimal.Decimal
	Variants  map[string]decimal.Decimal // variant_id -> stock
}

// WarehouseStock es el snapshot de stock de un almacén completo, indexado
// por producto. Se obtiene una vez por ejecución y es de solo lectura.
type WarehouseStock struct {
	WarehouseID string
	Products    map[string]ProductStock // product_id -> stock
}

// StockOf devuelve el stock actual del producto o variante referenciado.
// Un producto o variante ausente del snapshot cuenta como stock cero.
func (ws WarehouseStock) StockOf(ref ProductRef) decimal.Decimal {
	ps, ok := ws.Products[ref.ProductID]
	if !ok {
		return decimal.Zero
	}
	if ref.IsVariant {
		if qty, ok := ps.Variants[ref.VariantID]; ok {
			return qty
		}
		return decimal.Zero
	}
	return ps.Stock
}
