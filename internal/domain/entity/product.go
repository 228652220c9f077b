package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo de Holded, con sus variantes.
// Stock es el stock global del producto (la distribución por almacén vive en
// WarehouseStock); un producto sin SKU ni código de barras no es direccionable
// desde un CSV de ventas y se omite al indexar.
type Product struct {
	ID       string
	SKU      string
	Barcode  string
	Name     string
	Stock    decimal.Decimal
	Variants []Variant
}

// Variant es un sub-artículo de un producto (talla, color...) con SKU y stock propios.
type Variant struct {
	ID      string
	SKU     string
	Barcode string
	Name    string
	Stock   decimal.Decimal
}

// ProductRef identifica un producto o una variante concreta resuelta por SKU
// o código de barras. Para variantes, ProductID es el producto padre y
// VariantID la variante direccionable en la API de stock.
type ProductRef struct {
	ProductID   string
	ProductName string
	IsVariant   bool
	VariantID   string
}

// ItemID devuelve el identificador a usar en el payload de ajuste de stock:
// la variante si existe, el producto en caso contrario.
func (r ProductRef) ItemID() string {
	if r.IsVariant {
		return r.VariantID
	}
	return r.ProductID
}
